package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/httpresp"
	infraRepo "github.com/turnosbarberia/turnos-api/internal/infra/repository"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/usecase/appointment"
	"github.com/turnosbarberia/turnos-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	db *gorm.DB

	listByDateUC   *appointment.ListByDate
	listByMonthUC  *appointment.ListByMonth
	updateStatusUC *appointment.UpdateStatus
	autoCompleteUC *appointment.AutoComplete

	getSlotsUC *booking.GetAvailableSlots
	createUC   *booking.CreateBooking
}

func NewAppointmentHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
) *AppointmentHandler {
	repo := infraRepo.NewScheduleGormRepository(db)

	return &AppointmentHandler{
		db:             db,
		listByDateUC:   appointment.NewListByDate(repo),
		listByMonthUC:  appointment.NewListByMonth(repo),
		updateStatusUC: appointment.NewUpdateStatus(repo, auditDispatcher),
		autoCompleteUC: appointment.NewAutoComplete(repo, appointment.NewPendingCache()),
		getSlotsUC:     booking.NewGetAvailableSlots(repo),
		createUC:       booking.NewCreateBooking(repo, auditDispatcher),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type StaffBookingRequest struct {
	ClientName    string `json:"name" binding:"required"`
	ClientSurname string `json:"surname" binding:"required"`
	ClientPhone   string `json:"phone" binding:"required"`
	ClientEmail   string `json:"email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

////////////////////////////////////////////////////////
// LISTADOS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es requerida.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "El formato de fecha no es válido.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar los turnos.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_period", "Año y mes son requeridos.")
		return
	}

	items, err := h.listByMonthUC.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_year"), httperr.IsBusiness(err, "invalid_month"):
			httperr.BadRequest(c, "invalid_period", "Año o mes fuera de rango.")
		default:
			httperr.Internal(c, "failed_to_list_appointments", "Error al listar los turnos.")
		}
		return
	}

	httpresp.List(c, items)
}

////////////////////////////////////////////////////////
// DISPONIBILIDAD (PANEL)
////////////////////////////////////////////////////////

// Availability reusa el mismo motor que el flujo público, pero sobre el
// barbero autenticado y con soporte de exclude_id para reprogramar.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	date := c.Query("date")
	if date == "" {
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

	out, err := h.getSlotsUC.Execute(c.Request.Context(), booking.GetSlotsInput{
		BarberID:  barberID,
		Date:      date,
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
		"date":    date,
		"slots":   out.Slots,
		"message": out.Message,
	})
}

////////////////////////////////////////////////////////
// ALTA DESDE EL PANEL
////////////////////////////////////////////////////////

// Create permite al barbero cargar un turno a mano (cliente por teléfono,
// walk-in). No aplica la anticipación mínima del flujo público.
func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req StaffBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Todos los campos obligatorios deben estar completos.")
		return
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
		SkipLeadTime:  true,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment_id":    out.Appointment.ID,
		"confirmation_code": out.CancelCode,
		"date":              out.Appointment.Date,
		"start_time":        out.Appointment.StartTime,
		"end_time":          out.Appointment.EndTime,
		"status":            out.Appointment.Status,
	})
}

////////////////////////////////////////////////////////
// TRANSICIONES DE ESTADO
////////////////////////////////////////////////////////

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Turno inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_status", "El estado destino es requerido.")
		return
	}

	if !domain.IsKnownStatus(req.Status) {
		httperr.BadRequest(c, "unknown_status", "Estado desconocido: "+req.Status)
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		barberID,
		uint(appointmentID),
		domain.Status(req.Status),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "La transición de estado no está permitida.")
		default:
			httperr.Internal(c, "update_status_failed", "Error al actualizar el estado del turno.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment_id": ap.ID,
		"status":         ap.Status,
		"cancelled_at":   ap.CancelledAt,
		"completed_at":   ap.CompletedAt,
	})
}

////////////////////////////////////////////////////////
// AUTO-COMPLETADO
////////////////////////////////////////////////////////

func (h *AppointmentHandler) AutoComplete(c *gin.Context) {
	result, err := h.autoCompleteUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "auto_complete_failed", "Error al cerrar turnos vencidos.")
		return
	}

	c.JSON(http.StatusOK, result)
}
