package schedule

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
)

// ===============================
// Intervalos de tiempo
// ===============================

// Interval es un rango semiabierto [Start, End) dentro de un mismo día,
// expresado en minutos desde medianoche. Trabajar en minutos evita los
// corrimientos de fecha/zona horaria dentro del día.
type Interval struct {
	Start int
	End   int
}

// Overlaps aplica el test estricto de solapamiento para rangos semiabiertos:
// un turno que termina exactamente cuando empieza otro NO es conflicto.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains indica si o cae completo dentro de i.
func (i Interval) Contains(o Interval) bool {
	return o.Start >= i.Start && o.End <= i.End
}

func (i Interval) Valid() bool {
	return i.Start >= 0 && i.Start < i.End && i.End <= 24*60
}

var clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseClock convierte "HH:MM" a minutos desde medianoche. El formato es
// estricto: dos dígitos, dos puntos, dos dígitos, igual que las columnas
// donde se persiste.
func ParseClock(hm string) (int, error) {
	if !clockRe.MatchString(hm) {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	h, _ := strconv.Atoi(hm[:2])
	m, _ := strconv.Atoi(hm[3:])
	if h > 23 || m > 59 {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	return h*60 + m, nil
}

// FormatClock convierte minutos desde medianoche a "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseInterval arma un Interval a partir de "HH:MM"-"HH:MM".
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, httperr.ErrBusiness("invalid_time_range")
	}
	return iv, nil
}
