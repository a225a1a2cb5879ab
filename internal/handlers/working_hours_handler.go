package handlers

import (
	"errors"
	"net/http"

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

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		db:    db,
		audit: auditDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type WorkingBlockRequest struct {
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     *bool  `json:"active"`
}

type ReplaceWeekRequest struct {
	Blocks []WorkingBlockRequest `json:"blocks" binding:"required"`
}

////////////////////////////////////////////////////////
// GET
////////////////////////////////////////////////////////

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var blocks []models.WorkingBlock
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Error al obtener los horarios laborales.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

////////////////////////////////////////////////////////
// REPLACE (SEMANA COMPLETA)
////////////////////////////////////////////////////////

// Replace pisa toda la semana de una vez: el panel manda la configuración
// completa y acá se valida y se reemplaza en una transacción.
func (h *WorkingHoursHandler) Replace(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El cuerpo del pedido no es válido.")
		return
	}

	rows := make([]models.WorkingBlock, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		row, err := h.validateBlock(barberID, b)
		if err != nil {
			httperr.BadRequest(c, "invalid_working_block", err.Error())
			return
		}
		rows = append(rows, row)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingBlock{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Error al guardar los horarios laborales.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "working_hours_replaced",
		Entity:   "working_block",
		Metadata: gin.H{"blocks": len(rows)},
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Horarios actualizados exitosamente",
		"blocks":  rows,
	})
}

////////////////////////////////////////////////////////
// VALIDACIÓN
////////////////////////////////////////////////////////

func (h *WorkingHoursHandler) validateBlock(
	barberID uint,
	b WorkingBlockRequest,
) (models.WorkingBlock, error) {

	var row models.WorkingBlock

	if b.Weekday < 0 || b.Weekday > 6 {
		return row, errors.New("el día de la semana debe estar entre 0 (domingo) y 6 (sábado)")
	}

	window, err := domain.ParseInterval(b.StartTime, b.EndTime)
	if err != nil {
		return row, errors.New("el rango " + b.StartTime + "-" + b.EndTime + " no es válido")
	}

	hasBreak := b.BreakStart != "" || b.BreakEnd != ""
	if hasBreak {
		brk, err := domain.ParseInterval(b.BreakStart, b.BreakEnd)
		if err != nil {
			return row, errors.New("el descanso " + b.BreakStart + "-" + b.BreakEnd + " no es válido")
		}
		if !window.Contains(brk) {
			return row, errors.New("el descanso debe estar dentro del horario laboral")
		}
	}

	active := true
	if b.Active != nil {
		active = *b.Active
	}

	return models.WorkingBlock{
		BarberID:   barberID,
		Weekday:    b.Weekday,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		BreakStart: b.BreakStart,
		BreakEnd:   b.BreakEnd,
		Active:     active,
	}, nil
}
