package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/turnosbarberia/turnos-api/internal/models"
)

const catalogTTL = 5 * time.Minute

// CatalogCache cachea en redis el catálogo público de servicios por barbero.
// Es un cache de lectura: los errores de redis degradan a ir a la base.
// Con client nil el cache queda deshabilitado (redis es opcional).
type CatalogCache struct {
	client *redis.Client
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

func catalogKey(barberID uint) string {
	return fmt.Sprintf("catalog:%d", barberID)
}

func (c *CatalogCache) Get(ctx context.Context, barberID uint) ([]models.Service, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, catalogKey(barberID)).Bytes()
	if err != nil {
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, false
	}

	return services, true
}

func (c *CatalogCache) Set(ctx context.Context, barberID uint, services []models.Service) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(services)
	if err != nil {
		return
	}

	c.client.Set(ctx, catalogKey(barberID), raw, catalogTTL)
}

// Invalidate se llama al crear o editar servicios del barbero.
func (c *CatalogCache) Invalidate(ctx context.Context, barberID uint) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Del(ctx, catalogKey(barberID))
}
