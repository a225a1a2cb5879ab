package schedule

import (
	"time"

	"github.com/turnosbarberia/turnos-api/internal/models"
)

// ===============================
// Acciones de dominio
// ===============================

// Transition cambia el estado del turno aplicando la máquina de estados y
// estampando cancelled_at / completed_at según corresponda.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := ValidateTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}

// BlocksFromModels resuelve los bloques configurados a minutos, descartando
// filas inactivas o mal formadas. El orden de entrada se respeta; el orden
// final de los turnos lo garantiza GenerateSlots.
func BlocksFromModels(rows []models.WorkingBlock) []WorkingBlock {
	blocks := make([]WorkingBlock, 0, len(rows))

	for _, row := range rows {
		if !row.Active {
			continue
		}

		window, err := ParseInterval(row.StartTime, row.EndTime)
		if err != nil {
			continue
		}

		block := WorkingBlock{Window: window}

		if row.HasBreak() {
			brk, err := ParseInterval(row.BreakStart, row.BreakEnd)
			if err == nil {
				block.Break = brk
				block.HasBreak = true
			}
		}

		blocks = append(blocks, block)
	}

	return blocks
}

// BusyFromModels convierte turnos ocupados en intervalos, salteando el turno
// excluido (flujo de edición) y cualquier fila con horas ilegibles.
func BusyFromModels(rows []models.Appointment, excludeID uint) []Interval {
	busy := make([]Interval, 0, len(rows))

	for _, row := range rows {
		if excludeID != 0 && row.ID == excludeID {
			continue
		}

		iv, err := ParseInterval(row.StartTime, row.EndTime)
		if err != nil {
			continue
		}

		busy = append(busy, iv)
	}

	return busy
}

// WithinBlocks verifica que un rango caiga completo dentro de algún bloque
// de atención, sin pisar su pausa.
func WithinBlocks(blocks []WorkingBlock, span Interval) bool {
	for _, block := range blocks {
		if !block.Window.Contains(span) {
			continue
		}
		if block.HasBreak && span.Overlaps(block.Break) {
			return false
		}
		return true
	}
	return false
}
