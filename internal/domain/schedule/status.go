package schedule

import "github.com/turnosbarberia/turnos-api/internal/httperr"

// ===============================
// Estados del turno
// ===============================

type Status string

const (
	StatusReserved   Status = "reserved"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func InitialStatus() Status {
	return StatusReserved
}

// Occupied indica si el turno bloquea la agenda a efectos de solapamiento.
// Cancelados, ausentes y completados no ocupan lugar.
func (s Status) Occupied() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusCompleted:
		return false
	}
	return true
}

// OccupiedStatuses son los estados que cuentan como agenda ocupada,
// en el orden del ciclo de vida.
func OccupiedStatuses() []string {
	return []string{
		string(StatusReserved),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

// transitions define la máquina de estados:
//
//	reserved → confirmed → in_progress → completed
//	{reserved, confirmed, in_progress} → cancelled
//	{reserved, confirmed} → no_show
//
// A in_progress solo se llega desde confirmed: un turno sin confirmar no
// puede estar en la silla. completed y cancelled son terminales.
var transitions = map[Status][]Status{
	StatusReserved:   {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition devuelve invalid_state cuando el cambio pedido no es
// legal (por ejemplo cancelar un turno ya completado).
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func IsKnownStatus(s string) bool {
	switch Status(s) {
	case StatusReserved, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
