package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
)

func TestWeekdayUTC(t *testing.T) {
	// 2026-03-09 es lunes
	wd, err := WeekdayUTC("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, 1, wd)

	// 2026-03-08 es domingo
	wd, err = WeekdayUTC("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 0, wd)

	// 2026-03-14 es sábado
	wd, err = WeekdayUTC("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 6, wd)
}

func TestParseDateInvalida(t *testing.T) {
	for _, bad := range []string{"", "2026-3-9", "09-03-2026", "2026-13-01", "2026-02-30", "mañana"} {
		_, err := ParseDate(bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_date"), "entrada %q", bad)
	}
}
