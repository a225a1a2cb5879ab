package schedule

import (
	"regexp"
	"time"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate valida una fecha YYYY-MM-DD y la devuelve construida en UTC.
// El día de la semana SIEMPRE se deriva de la fecha UTC: construir la fecha
// en hora local corre el día cerca de medianoche en zonas detrás de UTC.
func ParseDate(date string) (time.Time, error) {
	if !dateRe.MatchString(date) {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}

	return t, nil
}

// WeekdayUTC devuelve el día de la semana (0 = domingo ... 6 = sábado)
// de una fecha YYYY-MM-DD.
func WeekdayUTC(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}
