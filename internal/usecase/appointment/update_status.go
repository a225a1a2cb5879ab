package appointment

import (
	"context"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/timezone"
)

// UpdateStatus mueve un turno por la máquina de estados desde el panel:
// confirmar, iniciar, completar, cancelar o marcar ausente.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	cfg, err := uc.repo.GetBarberConfig(ctx, barberID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(cfg.Timezone)
	if err := domain.Transition(ap, target, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
