package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type ProfilePatch struct {
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	ShopName    *string `json:"shop_name"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatar_url"`
	Description *string `json:"description"`
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *MeHandler) Patch(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req ProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El cuerpo del pedido no es válido.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		user.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.ShopName != nil {
		user.ShopName = strings.TrimSpace(*req.ShopName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Description != nil {
		user.Description = strings.TrimSpace(*req.Description)
	}

	if user.Name == "" || user.Surname == "" {
		httperr.BadRequest(c, "missing_required_fields", "Nombre y apellido no pueden quedar vacíos.")
		return
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Error al actualizar el perfil.")
		return
	}

	c.JSON(http.StatusOK, user)
}
