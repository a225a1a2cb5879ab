package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/cache"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	infraRepo "github.com/turnosbarberia/turnos-api/internal/infra/repository"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	catalog *cache.CatalogCache

	getSlotsUC   *booking.GetAvailableSlots
	createUC     *booking.CreateBooking
	cancelCodeUC *booking.CancelByCode
	getByCodeUC  *booking.GetByCode
}

func NewPublicHandler(
	db *gorm.DB,
	catalog *cache.CatalogCache,
	auditDispatcher *audit.Dispatcher,
) *PublicHandler {
	repo := infraRepo.NewScheduleGormRepository(db)

	return &PublicHandler{
		db:           db,
		catalog:      catalog,
		getSlotsUC:   booking.NewGetAvailableSlots(repo),
		createUC:     booking.NewCreateBooking(repo, auditDispatcher),
		cancelCodeUC: booking.NewCancelByCode(repo, auditDispatcher),
		getByCodeUC:  booking.NewGetByCode(repo),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	ClientName    string `json:"name" binding:"required"`
	ClientSurname string `json:"surname" binding:"required"`
	ClientPhone   string `json:"phone" binding:"required"`
	ClientEmail   string `json:"email"`
	BarberID      uint   `json:"barber_id"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime     string `json:"time" binding:"required"` // HH:MM
	Notes         string `json:"notes"`
}

type CancelByCodeRequest struct {
	CancelCode string `json:"cancel_code" binding:"required"`
}

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	// Solo barberos con al menos un servicio y un horario configurado
	// pueden recibir reservas.
	var barbers []models.User
	if err := h.db.
		Select("users.id", "users.name", "users.surname", "users.shop_name", "users.avatar_url", "users.description", "users.role").
		Joins("JOIN services s ON s.barber_id = users.id AND s.status = 'active'").
		Joins("JOIN working_blocks w ON w.barber_id = users.id AND w.active = true").
		Where("users.role IN ('barber', 'admin') AND users.active = true").
		Group("users.id").
		Order("users.role DESC, users.name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"barbers": barbers})
}

////////////////////////////////////////////////////////
// SERVICES (CATÁLOGO CACHEADO)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	barberID, err := queryUint(c, "barber_id")
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	ctx := c.Request.Context()

	services, hit := h.catalog.Get(ctx, barberID)
	if !hit {
		if err := h.db.
			Where("barber_id = ? AND status = 'active'", barberID).
			Order("name ASC").
			Find(&services).Error; err != nil {

			httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
			return
		}
		h.catalog.Set(ctx, barberID, services)
	}

	var cfg models.BarberConfig
	if err := h.db.Where("barber_id = ?", barberID).First(&cfg).Error; err != nil {
		cfg = models.DefaultBarberConfig(barberID)
	}

	if !cfg.ShowPrices {
		for i := range services {
			services[i].Price = 0
			services[i].PreviousPrice = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"services":    services,
		"show_prices": cfg.ShowPrices,
		"currency":    cfg.Currency,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es requerida.")
		return
	}

	serviceID, err := queryUint(c, "service_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	excludeID, err := queryUint(c, "exclude_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_exclude_id", "Turno a excluir inválido.")
		return
	}

	repo := infraRepo.NewScheduleGormRepository(h.db)

	barberID, err := queryUint(c, "barber_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	var barber *models.User
	if barberID != 0 {
		barber, err = repo.GetBarberByID(c.Request.Context(), barberID)
	} else {
		barber, err = repo.GetMainBarber(c.Request.Context())
	}
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "No hay barberos disponibles en este momento.")
		return
	}

	out, err := h.getSlotsUC.Execute(c.Request.Context(), booking.GetSlotsInput{
		BarberID:  barber.ID,
		Date:      dateStr,
		ServiceID: serviceID,
		ExcludeID: excludeID,
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "El formato de fecha no es válido.")
			return
		}
		httperr.Internal(c, "availability_failed", "Error al obtener los horarios disponibles.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    dateStr,
		"slots":   out.Slots,
		"message": out.Message,
		"barber": gin.H{
			"id":   barber.ID,
			"name": barber.Name + " " + barber.Surname,
			"shop": barber.ShopName,
		},
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Todos los campos obligatorios deben estar completos.")
		return
	}

	repo := infraRepo.NewScheduleGormRepository(h.db)

	barberID := req.BarberID
	if barberID == 0 {
		barber, err := repo.GetMainBarber(c.Request.Context())
		if err != nil {
			httperr.NotFound(c, "barber_not_found", "No hay barberos disponibles en este momento.")
			return
		}
		barberID = barber.ID
	}

	out, err := h.createUC.Execute(c.Request.Context(), booking.CreateBookingInput{
		BarberID:      barberID,
		ClientName:    req.ClientName,
		ClientSurname: req.ClientSurname,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Notes:         req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Reserva creada exitosamente",
		"data": gin.H{
			"appointment_id":    out.Appointment.ID,
			"confirmation_code": out.CancelCode,
			"client": gin.H{
				"name":    out.Client.Name,
				"surname": out.Client.Surname,
				"phone":   out.Client.Phone,
				"email":   out.Client.Email,
			},
			"service": gin.H{
				"name":  out.Service.Name,
				"price": out.Service.Price,
			},
			"appointment": gin.H{
				"date":       out.Appointment.Date,
				"start_time": out.Appointment.StartTime,
				"end_time":   out.Appointment.EndTime,
			},
		},
	})
}

////////////////////////////////////////////////////////
// LOOKUP / CANCEL BY CODE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBookingByCode(c *gin.Context) {
	ap, err := h.getByCodeUC.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "No se encontró una reserva con ese código.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment_id": ap.ID,
		"client":         ap.Client.Name + " " + ap.Client.Surname,
		"phone":          ap.Client.Phone,
		"service":        ap.Service.Name,
		"date":           ap.Date,
		"start_time":     ap.StartTime,
		"end_time":       ap.EndTime,
		"status":         ap.Status,
		"price_final":    ap.PriceFinal,
		"notes":          ap.Notes,
	})
}

func (h *PublicHandler) CancelByCode(c *gin.Context) {
	var req CancelByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_cancel_code", "El código de cancelación es requerido.")
		return
	}

	ap, err := h.cancelCodeUC.Execute(c.Request.Context(), req.CancelCode)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "No se encontró una reserva válida con ese código.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "La reserva ya no puede cancelarse.")
		default:
			httperr.Internal(c, "cancel_failed", "Error al cancelar la reserva.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reserva cancelada exitosamente",
		"data": gin.H{
			"appointment_id": ap.ID,
			"client":         ap.Client.Name + " " + ap.Client.Surname,
			"service":        ap.Service.Name,
			"date":           ap.Date,
			"start_time":     ap.StartTime,
		},
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
