package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/cache"
	"github.com/turnosbarberia/turnos-api/internal/config"
	"github.com/turnosbarberia/turnos-api/internal/handlers"
	"github.com/turnosbarberia/turnos-api/internal/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	redisClient *redis.Client,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	catalog := cache.NewCatalogCache(redisClient)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, catalog, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(db, auditDispatcher)

	serviceHandler := handlers.NewServiceHandler(db, catalog, auditDispatcher)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, auditDispatcher)
	specialDayHandler := handlers.NewSpecialDayHandler(db, auditDispatcher)
	configHandler := handlers.NewBarberConfigHandler(db, auditDispatcher)

	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (sin login)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/bookings/:code", publicHandler.GetBookingByCode)
			publicAPI.POST("/bookings/cancel", publicHandler.CancelByCode)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (panel del barbero)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Patch)

			secured.GET("/me/config", configHandler.Get)
			secured.PATCH("/me/config", configHandler.Patch)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Replace)

			secured.GET("/me/special-days", specialDayHandler.List)
			secured.POST("/me/special-days", specialDayHandler.Create)
			secured.DELETE("/me/special-days/:id", specialDayHandler.Delete)

			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.POST("/me/appointments/auto-complete", appointmentHandler.AutoComplete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
