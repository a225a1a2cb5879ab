package schedule

import "sort"

// ===============================
// Generación de turnos disponibles
// ===============================

// WorkingBlock es un bloque de atención ya resuelto a minutos.
// Break solo se considera cuando HasBreak es true.
type WorkingBlock struct {
	Window   Interval
	Break    Interval
	HasBreak bool
}

// Slot es un turno candidato, de la duración exacta del servicio pedido.
// Se calcula por consulta y nunca se persiste.
type Slot struct {
	Start       int
	End         int
	DurationMin int
}

// GenerateSlots recorre cada bloque de atención con una grilla fija:
// el cursor avanza siempre duration+buffer, se haya emitido el candidato o
// no. Un candidato se descarta si pisa la pausa del bloque o alguno de los
// turnos ocupados; en ambos casos el cursor avanza igual (la grilla no se
// corre para "rellenar" la pausa).
//
// Precondiciones del llamador: duration > 0, buffer >= 0, busy ya filtrado
// a turnos ocupados del día (y sin el turno en edición, si lo hay).
func GenerateSlots(blocks []WorkingBlock, busy []Interval, durationMin, bufferMin int) []Slot {
	slots := make([]Slot, 0)

	for _, block := range blocks {
		step := durationMin + bufferMin

		for cursor := block.Window.Start; cursor+durationMin <= block.Window.End; cursor += step {
			candidate := Interval{Start: cursor, End: cursor + durationMin}

			if block.HasBreak && candidate.Overlaps(block.Break) {
				continue
			}

			if overlapsAny(candidate, busy) {
				continue
			}

			slots = append(slots, Slot{
				Start:       candidate.Start,
				End:         candidate.End,
				DurationMin: durationMin,
			})
		}
	}

	// Con turnos partidos el orden de los bloques depende de cómo se
	// configuraron; ordenar acá da una garantía estable al llamador.
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
