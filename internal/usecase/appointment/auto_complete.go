package appointment

import (
	"context"
	"time"

	"github.com/turnosbarberia/turnos-api/internal/cache"
	domain "github.com/turnosbarberia/turnos-api/internal/domain/schedule"
	"github.com/turnosbarberia/turnos-api/internal/timezone"
)

// Tope de filas por barrida, para que el cron nunca arrastre un backlog
// gigante en una sola transacción.
const autoCompleteBatchLimit = 50

type AutoCompleteResult struct {
	UpdatedCount int  `json:"updated_count"`
	FromCache    bool `json:"from_cache"`
}

// AutoComplete marca como completados los turnos ocupados cuya hora de fin
// ya pasó y nadie cerró a mano. La PendingCache evita repetir la consulta
// cuando la última barrida reciente no dejó pendientes.
type AutoComplete struct {
	repo    domain.Repository
	pending *cache.PendingCache
}

func NewAutoComplete(
	repo domain.Repository,
	pending *cache.PendingCache,
) *AutoComplete {
	return &AutoComplete{
		repo:    repo,
		pending: pending,
	}
}

func (uc *AutoComplete) Execute(ctx context.Context) (*AutoCompleteResult, error) {

	now := timezone.Now()

	if uc.pending.ShouldSkip(now) {
		return &AutoCompleteResult{FromCache: true}, nil
	}

	expired, err := uc.repo.ListExpiredOccupied(
		ctx,
		now.Format("2006-01-02"),
		now.Format("15:04"),
		autoCompleteBatchLimit,
	)
	if err != nil {
		return nil, err
	}

	if len(expired) == 0 {
		uc.pending.Update(now, 0)
		return &AutoCompleteResult{}, nil
	}

	ids := make([]uint, 0, len(expired))
	for _, ap := range expired {
		// la consulta ya filtra por estados ocupados; el doble chequeo
		// protege la transición si el filtro cambia
		if domain.CanTransition(domain.Status(ap.Status), domain.StatusCompleted) {
			ids = append(ids, ap.ID)
		}
	}

	updated, err := uc.repo.CompleteAppointments(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	uc.pending.Update(now, 0)

	return &AutoCompleteResult{UpdatedCount: int(updated)}, nil
}

// NewPendingCache arma la cache con el TTL de barrido por defecto (1 hora,
// igual que el sistema anterior).
func NewPendingCache() *cache.PendingCache {
	return cache.NewPendingCache(time.Hour)
}
