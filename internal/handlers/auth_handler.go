package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/config"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/validators"
)

const tokenTTL = 24 * time.Hour

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config

	audit *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:    db,
		cfg:   cfg,
		audit: auditDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	ShopName string `json:"shop_name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

////////////////////////////////////////////////////////
// REGISTER
////////////////////////////////////////////////////////

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Todos los campos obligatorios deben estar completos (contraseña de al menos 8 caracteres).")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email", "El email no es válido o su dominio no existe.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {

		httperr.Internal(c, "register_failed", "Error al registrar el usuario.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_taken", "Ya existe una cuenta con ese email.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "register_failed", "Error al registrar el usuario.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		ShopName:     strings.TrimSpace(req.ShopName),
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         "barber",
		Active:       true,
	}

	// El alta deja al barbero operativo con la configuración por defecto;
	// horarios y servicios se cargan después desde el panel.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		defaultCfg := models.DefaultBarberConfig(user.ID)
		return tx.Create(&defaultCfg).Error
	})
	if err != nil {
		httperr.Internal(c, "register_failed", "Error al registrar el usuario.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: user.ID,
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	token, err := h.signToken(user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Usuario creado pero no se pudo generar el token. Iniciá sesión.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

////////////////////////////////////////////////////////
// LOGIN
////////////////////////////////////////////////////////

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email y contraseña son requeridos.")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.
		Where("email = ? AND active = true", req.Email).
		First(&user).Error; err != nil {

		// misma respuesta para email inexistente y contraseña incorrecta
		httperr.Unauthorized(c, "invalid_credentials", "Email o contraseña incorrectos.")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email o contraseña incorrectos.")
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Error al generar el token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *AuthHandler) signToken(user models.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	})

	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func publicUser(user models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"surname":   user.Surname,
		"shop_name": user.ShopName,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
	}
}
