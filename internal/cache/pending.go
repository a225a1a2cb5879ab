package cache

import (
	"sync"
	"time"
)

// PendingCache recuerda cuántos turnos vencidos quedaban sin completar en la
// última barrida de auto-completado. Si la última barrida fue reciente y no
// dejó pendientes, la siguiente puede saltearse la consulta.
// Es estado inyectado, no global: cada servicio recibe su instancia.
type PendingCache struct {
	mu sync.Mutex

	lastRefresh  time.Time
	ttl          time.Duration
	pendingCount int
}

func NewPendingCache(ttl time.Duration) *PendingCache {
	return &PendingCache{ttl: ttl}
}

// ShouldSkip indica si la barrida puede saltearse: hubo un refresh dentro
// del TTL y no quedaban turnos pendientes.
func (c *PendingCache) ShouldSkip(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastRefresh.IsZero() {
		return false
	}

	return now.Sub(c.lastRefresh) < c.ttl && c.pendingCount == 0
}

func (c *PendingCache) Update(now time.Time, pendingCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastRefresh = now
	c.pendingCount = pendingCount
}

func (c *PendingCache) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}
