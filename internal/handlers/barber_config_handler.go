package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BarberConfigHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberConfigHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
) *BarberConfigHandler {
	return &BarberConfigHandler{
		db:    db,
		audit: auditDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// Punteros para distinguir "no vino" de "vino en cero".
type BarberConfigPatch struct {
	BufferMinutes     *int    `json:"buffer_minutes"`
	LeadTimeMinutes   *int    `json:"lead_time_minutes"`
	MaxBookingsPerDay *int    `json:"max_bookings_per_day"`
	AllowSameDay      *bool   `json:"allow_same_day"`
	ShowPrices        *bool   `json:"show_prices"`
	Currency          *string `json:"currency"`
	Timezone          *string `json:"timezone"`
}

////////////////////////////////////////////////////////
// ENDPOINTS
////////////////////////////////////////////////////////

func (h *BarberConfigHandler) Get(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var cfg models.BarberConfig
	if err := h.db.Where("barber_id = ?", barberID).First(&cfg).Error; err != nil {
		cfg = models.DefaultBarberConfig(barberID)
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *BarberConfigHandler) Patch(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req BarberConfigPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El cuerpo del pedido no es válido.")
		return
	}

	if req.BufferMinutes != nil && (*req.BufferMinutes < 0 || *req.BufferMinutes > 120) {
		httperr.BadRequest(c, "invalid_buffer", "El buffer debe estar entre 0 y 120 minutos.")
		return
	}
	if req.LeadTimeMinutes != nil && *req.LeadTimeMinutes < 0 {
		httperr.BadRequest(c, "invalid_lead_time", "La anticipación mínima no puede ser negativa.")
		return
	}
	if req.MaxBookingsPerDay != nil && *req.MaxBookingsPerDay < 0 {
		httperr.BadRequest(c, "invalid_max_bookings", "El cupo diario no puede ser negativo.")
		return
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			httperr.BadRequest(c, "invalid_timezone", "Zona horaria desconocida: "+*req.Timezone)
			return
		}
	}

	var cfg models.BarberConfig
	if err := h.db.Where("barber_id = ?", barberID).First(&cfg).Error; err != nil {
		cfg = models.DefaultBarberConfig(barberID)
	}

	if req.BufferMinutes != nil {
		cfg.BufferMinutes = *req.BufferMinutes
	}
	if req.LeadTimeMinutes != nil {
		cfg.LeadTimeMinutes = *req.LeadTimeMinutes
	}
	if req.MaxBookingsPerDay != nil {
		cfg.MaxBookingsPerDay = *req.MaxBookingsPerDay
	}
	if req.AllowSameDay != nil {
		cfg.AllowSameDay = *req.AllowSameDay
	}
	if req.ShowPrices != nil {
		cfg.ShowPrices = *req.ShowPrices
	}
	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}
	if req.Timezone != nil {
		cfg.Timezone = *req.Timezone
	}

	if err := h.db.Save(&cfg).Error; err != nil {
		httperr.Internal(c, "failed_to_save_config", "Error al guardar la configuración.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "config_updated",
		Entity:   "barber_config",
		EntityID: &cfg.ID,
	})

	c.JSON(http.StatusOK, cfg)
}
