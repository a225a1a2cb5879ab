package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type SpecialDayHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSpecialDayHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
) *SpecialDayHandler {
	return &SpecialDayHandler{
		db:    db,
		audit: auditDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SpecialDayRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Kind        string `json:"kind"`
	WholeDay    *bool  `json:"whole_day"`
	RangeStart  string `json:"range_start"`
	RangeEnd    string `json:"range_end"`
	Description string `json:"description"`
}

////////////////////////////////////////////////////////
// ENDPOINTS
////////////////////////////////////////////////////////

func (h *SpecialDayHandler) List(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	query := h.db.Where("barber_id = ?", barberID)
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}

	var days []models.SpecialDay
	if err := query.Order("date ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_list_special_days", "Error al listar los días especiales.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"special_days": days})
}

func (h *SpecialDayHandler) Create(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req SpecialDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "La fecha es requerida.")
		return
	}

	if _, err := domain.ParseDate(req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "El formato de fecha no es válido.")
		return
	}

	kind := req.Kind
	switch kind {
	case "":
		kind = models.SpecialDayHoliday
	case models.SpecialDayHoliday, models.SpecialDayVacation, models.SpecialDayCustom:
	default:
		httperr.BadRequest(c, "invalid_kind", "Tipo de día especial desconocido: "+kind)
		return
	}

	wholeDay := true
	if req.WholeDay != nil {
		wholeDay = *req.WholeDay
	}

	if !wholeDay {
		if _, err := domain.ParseInterval(req.RangeStart, req.RangeEnd); err != nil {
			httperr.BadRequest(c, "invalid_range", "El rango horario del bloqueo no es válido.")
			return
		}
	}

	day := models.SpecialDay{
		BarberID:    barberID,
		Date:        req.Date,
		Kind:        kind,
		WholeDay:    wholeDay,
		RangeStart:  req.RangeStart,
		RangeEnd:    req.RangeEnd,
		Description: req.Description,
	}

	if err := h.db.Create(&day).Error; err != nil {
		// índice único (barber_id, date)
		httperr.Conflict(c, "special_day_exists", "Ya existe un día especial para esa fecha.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "special_day_created",
		Entity:   "special_day",
		EntityID: &day.ID,
	})

	c.JSON(http.StatusCreated, day)
}

func (h *SpecialDayHandler) Delete(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_special_day_id", "Día especial inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND barber_id = ?", uint(id), barberID).
		Delete(&models.SpecialDay{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_special_day", "Error al eliminar el día especial.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "special_day_not_found", "Día especial no encontrado.")
		return
	}

	deletedID := uint(id)
	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "special_day_deleted",
		Entity:   "special_day",
		EntityID: &deletedID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
