package appointment

import (
	"context"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/dto"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
)

type ListByMonth struct {
	repo domain.Repository
}

func NewListByMonth(
	repo domain.Repository,
) *ListByMonth {
	return &ListByMonth{
		repo: repo,
	}
}

func (uc *ListByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_year")
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	appointments, err := uc.repo.ListAppointmentsForMonth(ctx, barberID, year, month)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentListFromModels(appointments), nil
}
