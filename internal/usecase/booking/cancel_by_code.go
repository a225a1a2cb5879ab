package booking

import (
	"context"
	"strings"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/timezone"
)

type CancelByCode struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelByCode(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelByCode {
	return &CancelByCode{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancela un turno por código, sin login. Solo turnos todavía
// cancelables (reservado/confirmado); doble cancelación devuelve invalid_state.
func (uc *CancelByCode) Execute(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, httperr.ErrBusiness("missing_cancel_code")
	}

	ap, err := uc.repo.GetAppointmentByCancelCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	cfg, err := uc.repo.GetBarberConfig(ctx, ap.BarberID)
	if err != nil {
		return nil, err
	}

	// El autoservicio solo cancela turnos aún no iniciados; un turno
	// en curso lo resuelve el barbero desde el panel.
	switch domain.Status(ap.Status) {
	case domain.StatusReserved, domain.StatusConfirmed:
	default:
		return nil, httperr.ErrBusiness("invalid_state")
	}

	now := timezone.NowIn(cfg.Timezone)
	if err := domain.Transition(ap, domain.StatusCancelled, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: ap.BarberID,
		Action:   "appointment_cancelled_by_client",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
