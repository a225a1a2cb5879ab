package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// List devuelve la cartera de clientes del barbero autenticado: todos los
// que alguna vez reservaron con él, con búsqueda por nombre o teléfono.
func (h *ClientHandler) List(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	query := h.db.
		Model(&models.Client{}).
		Joins("JOIN appointments a ON a.client_id = clients.id").
		Where("a.barber_id = ?", barberID).
		Group("clients.id")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"clients.name ILIKE ? OR clients.surname ILIKE ? OR clients.phone LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := query.
		Order("clients.visits DESC, clients.name ASC").
		Limit(200).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Error al listar clientes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"total":   len(clients),
	})
}
