package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

// fakeRepo implementa domain.Repository en memoria para los tests de los
// casos de uso. Cada campo configura la respuesta de su método; los flags
// *Err fuerzan fallas puntuales.
type fakeRepo struct {
	barber *models.User
	cfg    models.BarberConfig

	service    *models.Service
	serviceErr bool

	blocks     []models.WorkingBlock
	specialDay *models.SpecialDay
	occupied   []models.Appointment

	occupiedCount int64

	client *models.Client

	// códigos que ya existen en la base, para forzar colisiones
	takenCodes    map[string]bool
	allCodesTaken bool

	// CreateAppointmentIfFree
	createErr error
	created   *models.Appointment

	// con persist activado el fake guarda los turnos creados y re-chequea
	// el solapamiento contra ellos, como la transacción serializada real
	persist   bool
	persisted []models.Appointment

	visitsIncremented int

	byCancelCode *models.Appointment
	updated      *models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barber: &models.User{ID: 1, Name: "Nico", Surname: "Pérez", Active: true},
		cfg:    models.DefaultBarberConfig(1),
		service: &models.Service{
			ID:          10,
			BarberID:    1,
			Name:        "Corte clásico",
			Price:       8000,
			DurationMin: 30,
			Status:      "active",
		},
		blocks: []models.WorkingBlock{
			{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		},
		client:     &models.Client{ID: 5, Name: "Juan", Surname: "Gómez", Phone: "1155550000"},
		takenCodes: map[string]bool{},
	}
}

func (f *fakeRepo) GetBarberByID(ctx context.Context, id uint) (*models.User, error) {
	if f.barber == nil || f.barber.ID != id {
		return nil, errors.New("not found")
	}
	return f.barber, nil
}

func (f *fakeRepo) GetMainBarber(ctx context.Context) (*models.User, error) {
	if f.barber == nil {
		return nil, errors.New("not found")
	}
	return f.barber, nil
}

func (f *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	if f.serviceErr || f.service == nil || f.service.ID != serviceID {
		return nil, errors.New("not found")
	}
	return f.service, nil
}

func (f *fakeRepo) GetBarberConfig(ctx context.Context, barberID uint) (models.BarberConfig, error) {
	return f.cfg, nil
}

func (f *fakeRepo) GetWorkingBlocks(ctx context.Context, barberID uint, weekday int) ([]models.WorkingBlock, error) {
	out := make([]models.WorkingBlock, 0)
	for _, b := range f.blocks {
		if b.Weekday == weekday {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSpecialDay(ctx context.Context, barberID uint, date string) (*models.SpecialDay, error) {
	if f.specialDay != nil && f.specialDay.Date == date {
		return f.specialDay, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListOccupiedAppointments(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0)
	for _, ap := range f.occupied {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountOccupiedForDay(ctx context.Context, barberID uint, date string) (int64, error) {
	return f.occupiedCount, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, name, surname, phone, email, notes string) (*models.Client, error) {
	return f.client, nil
}

func (f *fakeRepo) IncrementClientVisits(ctx context.Context, clientID uint) error {
	f.visitsIncremented++
	return nil
}

func (f *fakeRepo) CancelCodeExists(ctx context.Context, code string) (bool, error) {
	if f.allCodesTaken {
		return true, nil
	}
	return f.takenCodes[code], nil
}

func (f *fakeRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}

	if f.persist {
		for _, ex := range f.persisted {
			// mismo test estricto de la consulta real; los HH:MM comparan
			// bien como strings
			if ex.Date == ap.Date && ap.StartTime < ex.EndTime && ex.StartTime < ap.EndTime {
				return httperr.ErrBusiness("slot_taken")
			}
		}
	}

	ap.ID = uint(100 + len(f.persisted))
	f.created = ap

	if f.persist {
		f.persisted = append(f.persisted, *ap)
	}
	return nil
}

func (f *fakeRepo) GetAppointmentByCancelCode(ctx context.Context, code string) (*models.Appointment, error) {
	if f.byCancelCode == nil || f.byCancelCode.CancelCode != code {
		return nil, errors.New("not found")
	}
	return f.byCancelCode, nil
}

func (f *fakeRepo) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	return nil, errors.New("not found")
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListAppointmentsForMonth(ctx context.Context, barberID uint, year, month int) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListExpiredOccupied(ctx context.Context, date, timeOfDay string, limit int) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) CompleteAppointments(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	return 0, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// errBusinessCode devuelve el código de negocio del error, o "" si no lo es.
func errBusinessCode(err error) string {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
