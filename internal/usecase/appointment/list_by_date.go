package appointment

import (
	"context"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/dto"
)

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(
	repo domain.Repository,
) *ListByDate {
	return &ListByDate{
		repo: repo,
	}
}

func (uc *ListByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentListFromModels(appointments), nil
}
