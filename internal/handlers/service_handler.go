package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/cache"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.CatalogCache
	audit   *audit.Dispatcher
}

func NewServiceHandler(
	db *gorm.DB,
	catalog *cache.CatalogCache,
	auditDispatcher *audit.Dispatcher,
) *ServiceHandler {
	return &ServiceHandler{
		db:      db,
		catalog: catalog,
		audit:   auditDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min" binding:"required"`
}

type ServicePatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	DurationMin *int     `json:"duration_min"`
	Status      *string  `json:"status"`
}

////////////////////////////////////////////////////////
// ENDPOINTS
////////////////////////////////////////////////////////

func (h *ServiceHandler) List(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	query := h.db.Where("barber_id = ?", barberID)
	if c.Query("include_inactive") != "true" {
		query = query.Where("status = 'active'")
	}

	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nombre y duración son obligatorios.")
		return
	}

	if req.DurationMin <= 0 || req.DurationMin > 480 {
		httperr.BadRequest(c, "invalid_duration", "La duración debe estar entre 1 y 480 minutos.")
		return
	}
	if req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
		return
	}

	service := models.Service{
		BarberID:    barberID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Status:      "active",
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	h.catalog.Invalidate(c.Request.Context(), barberID)

	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	var req ServicePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El cuerpo del pedido no es válido.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND barber_id = ?", uint(serviceID), barberID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
			return
		}
		// se conserva el precio anterior para mostrar descuentos
		if *req.Price != service.Price {
			prev := service.Price
			service.PreviousPrice = &prev
		}
		service.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 || *req.DurationMin > 480 {
			httperr.BadRequest(c, "invalid_duration", "La duración debe estar entre 1 y 480 minutos.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			httperr.BadRequest(c, "invalid_status", "El estado debe ser active o inactive.")
			return
		}
		service.Status = *req.Status
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	h.catalog.Invalidate(c.Request.Context(), barberID)

	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}
