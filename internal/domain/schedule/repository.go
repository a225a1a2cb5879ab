package schedule

import (
	"context"
	"time"

	"github.com/turnosbarberia/turnos-api/internal/models"
)

type Repository interface {
	// -------- Barbers --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// GetMainBarber devuelve el barbero/admin activo con más servicios y
	// horarios configurados; se usa cuando el cliente no elige barbero.
	GetMainBarber(
		ctx context.Context,
	) (*models.User, error)

	// -------- Service / Config --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetBarberConfig(
		ctx context.Context,
		barberID uint,
	) (models.BarberConfig, error)

	// -------- Availability inputs --------
	GetWorkingBlocks(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WorkingBlock, error)

	GetSpecialDay(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.SpecialDay, error)

	ListOccupiedAppointments(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	CountOccupiedForDay(
		ctx context.Context,
		barberID uint,
		date string,
	) (int64, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		surname string,
		phone string,
		email string,
		notes string,
	) (*models.Client, error)

	IncrementClientVisits(
		ctx context.Context,
		clientID uint,
	) error

	// -------- Appointment (create / conflict) --------
	CancelCodeExists(
		ctx context.Context,
		code string,
	) (bool, error)

	// CreateAppointmentIfFree re-valida el solapamiento contra datos vivos y
	// crea el turno dentro de la misma transacción, con lock de las filas en
	// conflicto. Devuelve slot_taken si otro pedido ganó la carrera.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (lookup / state change) --------
	GetAppointmentByCancelCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Dashboard listings --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForMonth(
		ctx context.Context,
		barberID uint,
		year int,
		month int,
	) ([]models.Appointment, error)

	// -------- Auto-complete sweep --------
	ListExpiredOccupied(
		ctx context.Context,
		date string,
		timeOfDay string,
		limit int,
	) ([]models.Appointment, error)

	CompleteAppointments(
		ctx context.Context,
		ids []uint,
		now time.Time,
	) (int64, error)
}
