package booking

import (
	"context"
	"log"

	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
)

// Duración usada cuando el pedido no trae servicio o el servicio no existe.
const defaultServiceDurationMin = 30

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GetSlotsInput struct {
	BarberID  uint
	Date      string // YYYY-MM-DD
	ServiceID uint   // 0 = sin servicio, usa duración por defecto
	ExcludeID uint   // turno a ignorar (flujo de edición)
}

type SlotDTO struct {
	StartTime   string `json:"start_time"` // HH:MM
	EndTime     string `json:"end_time"`   // HH:MM
	Available   bool   `json:"available"`
	DurationMin int    `json:"duration_min"`
}

// GetSlotsOutput lleva los turnos disponibles y, cuando la lista queda
// vacía, el motivo legible (día cerrado, día especial, agenda llena).
type GetSlotsOutput struct {
	Slots   []SlotDTO
	Message string
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) (*GetSlotsOutput, error) {

	// --------------------------------------------------
	// 1. Fecha válida + día de la semana (siempre UTC)
	// --------------------------------------------------
	weekday, err := domain.WeekdayUTC(in.Date)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Día especial: corta antes de mirar horarios
	// --------------------------------------------------
	special, err := uc.repo.GetSpecialDay(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	if special != nil {
		msg := special.Description
		if msg == "" {
			msg = special.Kind
		}
		return &GetSlotsOutput{
			Slots:   []SlotDTO{},
			Message: "No hay horarios disponibles: " + msg,
		}, nil
	}

	// --------------------------------------------------
	// 3. Configuración (buffer) y duración del servicio
	// --------------------------------------------------
	cfg, err := uc.repo.GetBarberConfig(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	duration := defaultServiceDurationMin
	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			log.Printf("servicio %d no encontrado, usando duración por defecto de %d min", in.ServiceID, duration)
		} else {
			duration = service.DurationMin
		}
	} else {
		log.Printf("pedido de disponibilidad sin servicio, usando duración por defecto de %d min", duration)
	}

	// --------------------------------------------------
	// 4. Bloques de atención del día
	// --------------------------------------------------
	rows, err := uc.repo.GetWorkingBlocks(ctx, in.BarberID, weekday)
	if err != nil {
		return nil, err
	}

	blocks := domain.BlocksFromModels(rows)
	if len(blocks) == 0 {
		return &GetSlotsOutput{
			Slots:   []SlotDTO{},
			Message: "No hay horarios laborales configurados para este día",
		}, nil
	}

	// --------------------------------------------------
	// 5. Turnos ocupados (sin el turno en edición)
	// --------------------------------------------------
	occupied, err := uc.repo.ListOccupiedAppointments(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	busy := domain.BusyFromModels(occupied, in.ExcludeID)

	// --------------------------------------------------
	// 6. Generación de turnos
	// --------------------------------------------------
	slots := domain.GenerateSlots(blocks, busy, duration, cfg.BufferMinutes)

	out := &GetSlotsOutput{Slots: make([]SlotDTO, 0, len(slots))}
	for _, s := range slots {
		out.Slots = append(out.Slots, SlotDTO{
			StartTime:   domain.FormatClock(s.Start),
			EndTime:     domain.FormatClock(s.End),
			Available:   true,
			DurationMin: s.DurationMin,
		})
	}

	if len(out.Slots) == 0 {
		out.Message = "No quedan horarios disponibles para esta fecha"
	}

	return out, nil
}
