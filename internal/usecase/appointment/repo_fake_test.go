package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

type fakeRepo struct {
	appointment *models.Appointment
	updated     *models.Appointment

	expired      []models.Appointment
	completedIDs []uint

	listedDay   []models.Appointment
	listedMonth []models.Appointment
}

func (f *fakeRepo) GetBarberByID(ctx context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (f *fakeRepo) GetMainBarber(ctx context.Context) (*models.User, error) {
	return &models.User{ID: 1}, nil
}

func (f *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetBarberConfig(ctx context.Context, barberID uint) (models.BarberConfig, error) {
	return models.DefaultBarberConfig(barberID), nil
}

func (f *fakeRepo) GetWorkingBlocks(ctx context.Context, barberID uint, weekday int) ([]models.WorkingBlock, error) {
	return nil, nil
}

func (f *fakeRepo) GetSpecialDay(ctx context.Context, barberID uint, date string) (*models.SpecialDay, error) {
	return nil, nil
}

func (f *fakeRepo) ListOccupiedAppointments(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) CountOccupiedForDay(ctx context.Context, barberID uint, date string) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, name, surname, phone, email, notes string) (*models.Client, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) IncrementClientVisits(ctx context.Context, clientID uint) error {
	return nil
}

func (f *fakeRepo) CancelCodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) GetAppointmentByCancelCode(ctx context.Context, code string) (*models.Appointment, error) {
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != appointmentID || f.appointment.BarberID != barberID {
		return nil, errors.New("not found")
	}
	return f.appointment, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	return f.listedDay, nil
}

func (f *fakeRepo) ListAppointmentsForMonth(ctx context.Context, barberID uint, year, month int) ([]models.Appointment, error) {
	return f.listedMonth, nil
}

func (f *fakeRepo) ListExpiredOccupied(ctx context.Context, date, timeOfDay string, limit int) ([]models.Appointment, error) {
	return f.expired, nil
}

func (f *fakeRepo) CompleteAppointments(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	f.completedIDs = ids
	return int64(len(ids)), nil
}

var _ domain.Repository = (*fakeRepo)(nil)
