package booking

import (
	"context"
	"strings"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

type GetByCode struct {
	repo domain.Repository
}

func NewGetByCode(repo domain.Repository) *GetByCode {
	return &GetByCode{repo: repo}
}

func (uc *GetByCode) Execute(
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

	return ap, nil
}
