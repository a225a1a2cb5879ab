package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ('barber', 'admin') AND active = true", id).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) GetMainBarber(
	ctx context.Context,
) (*models.User, error) {

	var barber models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("LEFT JOIN services s ON s.barber_id = users.id AND s.status = 'active'").
		Joins("LEFT JOIN working_blocks w ON w.barber_id = users.id AND w.active = true").
		Where("users.role IN ('barber', 'admin') AND users.active = true").
		Group("users.id").
		Order("COUNT(DISTINCT s.id) DESC, COUNT(DISTINCT w.id) DESC").
		First(&barber).Error
	if err != nil {
		return nil, err
	}

	return &barber, nil
}

// --------------------------------------------------
// Service / Config
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = 'active'", serviceID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ScheduleGormRepository) GetBarberConfig(
	ctx context.Context,
	barberID uint,
) (models.BarberConfig, error) {

	var cfg models.BarberConfig
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&cfg).Error

	if err == gorm.ErrRecordNotFound {
		return models.DefaultBarberConfig(barberID), nil
	}
	if err != nil {
		return models.BarberConfig{}, err
	}

	return cfg, nil
}

// --------------------------------------------------
// Availability inputs
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWorkingBlocks(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WorkingBlock, error) {

	var blocks []models.WorkingBlock
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ? AND active = true", barberID, weekday).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *ScheduleGormRepository) GetSpecialDay(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.SpecialDay, error) {

	var day models.SpecialDay
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&day).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (r *ScheduleGormRepository) ListOccupiedAppointments(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date, domain.OccupiedStatuses(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) CountOccupiedForDay(
	ctx context.Context,
	barberID uint,
	date string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date, domain.OccupiedStatuses(),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	surname string,
	phone string,
	email string,
	notes string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:    name,
		Surname: surname,
		Phone:   phone,
		Email:   email,
		Notes:   notes,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ScheduleGormRepository) IncrementClientVisits(
	ctx context.Context,
	clientID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		UpdateColumn("visits", gorm.Expr("visits + 1")).Error
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) CancelCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("cancel_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateAppointmentIfFree repite el chequeo de solapamiento y crea el turno
// en una sola transacción, serializada por un advisory lock por
// (barbero, fecha). El lock es obligatorio: cuando la ventana está libre el
// SELECT no encuentra filas, FOR UPDATE no tiene nada que lockear y dos
// inserts concurrentes pasarían los dos. Con el lock, el segundo pedido
// espera al commit del primero, su re-chequeo ve el turno nuevo y recibe
// slot_taken.
func (r *ScheduleGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		lockKey := fmt.Sprintf("%d:%s", ap.BarberID, ap.Date)
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			lockKey,
		).Error; err != nil {
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				ap.Date,
				domain.OccupiedStatuses(),
				ap.EndTime,
				ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (lookup / state change)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointmentByCancelCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("cancel_code = ?", code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Dashboard listings
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]models.Appointment, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND date >= ? AND date < ?",
			barberID,
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Auto-complete sweep
// --------------------------------------------------

func (r *ScheduleGormRepository) ListExpiredOccupied(
	ctx context.Context,
	date string,
	timeOfDay string,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "end_time", "status").
		Where(
			"status IN ? AND (date < ? OR (date = ? AND end_time < ?))",
			domain.OccupiedStatuses(), date, date, timeOfDay,
		).
		Order("date ASC, end_time ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) CompleteAppointments(
	ctx context.Context,
	ids []uint,
	now time.Time,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": now,
		})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
