package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosbarberia/turnos-api/internal/cache"
	"github.com/turnosbarberia/turnos-api/internal/models"
)

func TestAutoComplete_CierraVencidos(t *testing.T) {
	repo := &fakeRepo{
		expired: []models.Appointment{
			{ID: 1, Status: "confirmed"},
			{ID: 2, Status: "in_progress"},
		},
	}
	uc := NewAutoComplete(repo, NewPendingCache())

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.UpdatedCount)
	assert.False(t, res.FromCache)
	assert.Equal(t, []uint{1, 2}, repo.completedIDs)
}

func TestAutoComplete_IgnoraEstadosNoCompletables(t *testing.T) {
	// si el filtro de la consulta cambiara, la máquina de estados sigue
	// protegiendo las transiciones
	repo := &fakeRepo{
		expired: []models.Appointment{
			{ID: 1, Status: "confirmed"},
			{ID: 2, Status: "cancelled"},
			{ID: 3, Status: "no_show"},
		},
	}
	uc := NewAutoComplete(repo, NewPendingCache())

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, []uint{1}, repo.completedIDs)
}

func TestAutoComplete_CacheEvitaBarridasSeguidas(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewAutoComplete(repo, cache.NewPendingCache(time.Hour))

	// primera barrida: sin pendientes, se registra en la cache
	res, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 0, res.UpdatedCount)

	// segunda barrida inmediata: responde desde la cache sin ir a la base
	res, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, res.FromCache)
}
