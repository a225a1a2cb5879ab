package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

// 2026-03-09 es lunes; los bloques del fake están en weekday 1.
const testMonday = "2026-03-09"

func TestGetSlots_DiaNormal(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.BufferMinutes = 0

	uc := NewGetAvailableSlots(repo)

	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID:  1,
		Date:      testMonday,
		ServiceID: 10,
	})
	require.NoError(t, err)

	// 09:00-12:00, servicio de 30 sin buffer
	require.Len(t, out.Slots, 6)
	assert.Equal(t, "09:00", out.Slots[0].StartTime)
	assert.Equal(t, "09:30", out.Slots[0].EndTime)
	assert.Equal(t, "11:30", out.Slots[5].StartTime)
	assert.Empty(t, out.Message)

	for _, s := range out.Slots {
		assert.True(t, s.Available)
		assert.Equal(t, 30, s.DurationMin)
	}
}

func TestGetSlots_ConBuffer(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.BufferMinutes = 5

	uc := NewGetAvailableSlots(repo)

	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID:  1,
		Date:      testMonday,
		ServiceID: 10,
	})
	require.NoError(t, err)

	require.Len(t, out.Slots, 5)
	assert.Equal(t, "11:20", out.Slots[4].StartTime)
	assert.Equal(t, "11:50", out.Slots[4].EndTime)
}

func TestGetSlots_DiaEspecial(t *testing.T) {
	repo := newFakeRepo()
	repo.specialDay = &models.SpecialDay{
		BarberID:    1,
		Date:        testMonday,
		WholeDay:    true,
		Description: "Feriado de Carnaval",
	}

	uc := NewGetAvailableSlots(repo)

	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID: 1,
		Date:     testMonday,
	})
	require.NoError(t, err)

	assert.Empty(t, out.Slots)
	assert.Equal(t, "No hay horarios disponibles: Feriado de Carnaval", out.Message)
}

func TestGetSlots_DiaSinHorarios(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableSlots(repo)

	// 2026-03-10 es martes: no hay bloques configurados
	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID: 1,
		Date:     "2026-03-10",
	})
	require.NoError(t, err)

	assert.Empty(t, out.Slots)
	assert.Equal(t, "No hay horarios laborales configurados para este día", out.Message)
}

func TestGetSlots_SinServicioUsaDuracionPorDefecto(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.BufferMinutes = 0

	uc := NewGetAvailableSlots(repo)

	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID: 1,
		Date:     testMonday,
		// ServiceID 0: duración por defecto (30)
	})
	require.NoError(t, err)

	require.NotEmpty(t, out.Slots)
	assert.Equal(t, defaultServiceDurationMin, out.Slots[0].DurationMin)
}

func TestGetSlots_OcupadosYExclusion(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.BufferMinutes = 0
	repo.occupied = []models.Appointment{
		{ID: 7, Date: testMonday, StartTime: "10:00", EndTime: "10:30", Status: "confirmed"},
	}

	uc := NewGetAvailableSlots(repo)

	// sin exclusión: el 10:00 no aparece
	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID:  1,
		Date:      testMonday,
		ServiceID: 10,
	})
	require.NoError(t, err)
	for _, s := range out.Slots {
		assert.NotEqual(t, "10:00", s.StartTime)
	}

	// reprogramando el turno 7, su propio horario vuelve a ofrecerse
	out, err = uc.Execute(context.Background(), GetSlotsInput{
		BarberID:  1,
		Date:      testMonday,
		ServiceID: 10,
		ExcludeID: 7,
	})
	require.NoError(t, err)

	found := false
	for _, s := range out.Slots {
		if s.StartTime == "10:00" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetSlots_AgendaLlena(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.BufferMinutes = 0
	repo.occupied = []models.Appointment{
		{ID: 1, Date: testMonday, StartTime: "09:00", EndTime: "12:00", Status: "confirmed"},
	}

	uc := NewGetAvailableSlots(repo)

	out, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID:  1,
		Date:      testMonday,
		ServiceID: 10,
	})
	require.NoError(t, err)

	assert.Empty(t, out.Slots)
	assert.Equal(t, "No quedan horarios disponibles para esta fecha", out.Message)
}

func TestGetSlots_FechaInvalida(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableSlots(repo)

	_, err := uc.Execute(context.Background(), GetSlotsInput{
		BarberID: 1,
		Date:     "09/03/2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
