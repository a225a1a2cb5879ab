package booking

import (
	"context"
	"strings"
	"time"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/timezone"
	"github.com/turnosbarberia/turnos-api/internal/validators"
)

const cancelCodeMaxRetries = 10

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	BarberID uint

	ClientName    string
	ClientSurname string
	ClientPhone   string
	ClientEmail   string

	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	Notes     string

	// Staff crea turnos desde el panel sin anticipación mínima.
	SkipLeadTime bool
}

type CreateBookingOutput struct {
	Appointment *models.Appointment
	Client      *models.Client
	Service     *models.Service
	CancelCode  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	// --------------------------------------------------
	// 1. Validación de entrada (antes de tocar la base)
	// --------------------------------------------------
	if err := uc.validate(&in); err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	cfg, err := uc.repo.GetBarberConfig(ctx, barber.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Servicio activo → duración real del turno.
	// Nunca se usa el buffer como duración: el buffer solo separa turnos.
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	startMin, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	span := domain.Interval{Start: startMin, End: startMin + service.DurationMin}
	if !span.Valid() {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	// --------------------------------------------------
	// 3. Reglas de agenda: anticipación, mismo día, cupo diario
	// --------------------------------------------------
	now := timezone.NowIn(cfg.Timezone)

	if err := uc.checkLeadTime(&in, &cfg, now); err != nil {
		return nil, err
	}

	occupiedCount, err := uc.repo.CountOccupiedForDay(ctx, barber.ID, in.Date)
	if err != nil {
		return nil, err
	}
	if cfg.MaxBookingsPerDay > 0 && occupiedCount >= int64(cfg.MaxBookingsPerDay) {
		return nil, httperr.ErrBusiness("day_fully_booked")
	}

	// --------------------------------------------------
	// 4. Día especial + horario laboral
	// --------------------------------------------------
	special, err := uc.repo.GetSpecialDay(ctx, barber.ID, in.Date)
	if err != nil {
		return nil, err
	}
	if special != nil && uc.specialDayBlocks(special, span) {
		return nil, httperr.ErrBusiness("special_day")
	}

	weekday, err := domain.WeekdayUTC(in.Date)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.GetWorkingBlocks(ctx, barber.ID, weekday)
	if err != nil {
		return nil, err
	}
	if !domain.WithinBlocks(domain.BlocksFromModels(rows), span) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5. Cliente (alta o reuso por teléfono)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientSurname,
		in.ClientPhone,
		in.ClientEmail,
		in.Notes,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Código de cancelación único (reintento por colisión)
	// --------------------------------------------------
	code, err := uc.newUniqueCancelCode(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Re-chequeo de disponibilidad + alta, atómicos.
	// Los turnos listados antes pudieron ser tomados por otro pedido:
	// nunca se confía en un slot calculado previamente.
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:   barber.ID,
		ClientID:   client.ID,
		ServiceID:  service.ID,
		Date:       in.Date,
		StartTime:  domain.FormatClock(span.Start),
		EndTime:    domain.FormatClock(span.End),
		Status:     string(domain.InitialStatus()),
		PriceFinal: service.Price,
		CancelCode: code,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	// el turno ya existe; un contador de visitas desactualizado no justifica fallar
	_ = uc.repo.IncrementClientVisits(ctx, client.ID)

	uc.audit.Dispatch(audit.Event{
		BarberID: barber.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &CreateBookingOutput{
		Appointment: ap,
		Client:      client,
		Service:     service,
		CancelCode:  code,
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *CreateBooking) validate(in *CreateBookingInput) error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientSurname = strings.TrimSpace(in.ClientSurname)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.ClientName == "" || in.ClientSurname == "" || in.ClientPhone == "" {
		return httperr.ErrBusiness("missing_required_fields")
	}
	if in.ServiceID == 0 {
		return httperr.ErrBusiness("missing_service")
	}
	if in.ClientEmail != "" && !validators.IsEmailSyntaxValid(in.ClientEmail) {
		return httperr.ErrBusiness("invalid_email")
	}
	if _, err := domain.ParseDate(in.Date); err != nil {
		return err
	}
	return nil
}

func (uc *CreateBooking) checkLeadTime(
	in *CreateBookingInput,
	cfg *models.BarberConfig,
	now time.Time,
) error {

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.StartTime,
		now.Location(),
	)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}

	if start.Before(now) {
		return httperr.ErrBusiness("date_in_past")
	}

	if !cfg.AllowSameDay && in.Date == now.Format("2006-01-02") {
		return httperr.ErrBusiness("same_day_not_allowed")
	}

	if in.SkipLeadTime {
		return nil
	}

	minAllowed := now.Add(time.Duration(cfg.LeadTimeMinutes) * time.Minute)
	if start.Before(minAllowed) {
		return httperr.ErrBusiness("too_soon")
	}

	return nil
}

func (uc *CreateBooking) specialDayBlocks(
	special *models.SpecialDay,
	span domain.Interval,
) bool {

	if special.WholeDay {
		return true
	}

	blocked, err := domain.ParseInterval(special.RangeStart, special.RangeEnd)
	if err != nil {
		// rango ilegible: se bloquea el día completo antes que sobrevender
		return true
	}

	return span.Overlaps(blocked)
}

func (uc *CreateBooking) newUniqueCancelCode(ctx context.Context) (string, error) {
	for i := 0; i < cancelCodeMaxRetries; i++ {
		code := domain.NewCancelCode()

		exists, err := uc.repo.CancelCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", httperr.ErrBusiness("cancel_code_exhausted")
}
