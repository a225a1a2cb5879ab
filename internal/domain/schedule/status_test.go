package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusReserved, StatusConfirmed},
		{StatusReserved, StatusCompleted},
		{StatusReserved, StatusCancelled},
		{StatusReserved, StatusNoShow},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	forbidden := []struct{ from, to Status }{
		// terminales: de acá no se sale
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusReserved},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCancelled},
		// un turno en curso ya no puede ser ausente
		{StatusInProgress, StatusNoShow},
		// a in_progress solo se llega desde confirmed
		{StatusReserved, StatusInProgress},
		// no_show solo admite salir hacia nada
		{StatusNoShow, StatusCompleted},
		// nunca se retrocede
		{StatusConfirmed, StatusReserved},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestOccupied(t *testing.T) {
	assert.True(t, StatusReserved.Occupied())
	assert.True(t, StatusConfirmed.Occupied())
	assert.True(t, StatusInProgress.Occupied())

	assert.False(t, StatusCompleted.Occupied())
	assert.False(t, StatusCancelled.Occupied())
	assert.False(t, StatusNoShow.Occupied())
}

func TestTransitionEstampaTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Transition(ap, StatusCancelled, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
	assert.Nil(t, ap.CompletedAt)

	ap = &models.Appointment{Status: string(StatusInProgress)}
	require.NoError(t, Transition(ap, StatusCompleted, now))
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
	assert.Nil(t, ap.CancelledAt)
}

func TestTransitionInvalida(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusCompleted)}
	err := Transition(ap, StatusCancelled, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// el turno queda intacto
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Nil(t, ap.CancelledAt)
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{"reserved", "confirmed", "in_progress", "completed", "cancelled", "no_show"} {
		assert.True(t, IsKnownStatus(s), s)
	}
	assert.False(t, IsKnownStatus("pending"))
	assert.False(t, IsKnownStatus(""))
}
