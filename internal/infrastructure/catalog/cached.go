package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/infrastructure/cache"
	"github.com/jhoicas/Rental-api/pkg/logger"
)

const (
	roomKeyPrefix = "rental:room:"
	servicesKey   = "rental:services"
)

// Source lo que el decorador envuelve (Postgres o Memory).
type Source interface {
	billing.RoomLookup
	billing.ServiceCatalog
}

// Cached decora un Source guardando las respuestas exitosas en un cache.Store.
// Los errores (habitación inexistente, sin contrato) no se guardan. Una falla del
// store se registra y se consulta la fuente.
type Cached struct {
	src   Source
	store cache.Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewCached construye el decorador.
func NewCached(src Source, store cache.Store, ttl time.Duration, log *logger.Logger) *Cached {
	return &Cached{src: src, store: store, ttl: ttl, log: log}
}

// LookupRoom ver billing.RoomLookup.
func (c *Cached) LookupRoom(ctx context.Context, roomID string) (*billing.RoomDetails, error) {
	key := roomKeyPrefix + roomID
	var d billing.RoomDetails
	if c.get(ctx, key, &d) {
		return &d, nil
	}
	res, err := c.src.LookupRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, res)
	return res, nil
}

// ListServices ver billing.ServiceCatalog.
func (c *Cached) ListServices(ctx context.Context) ([]*entity.Service, error) {
	var list []*entity.Service
	if c.get(ctx, servicesKey, &list) {
		return list, nil
	}
	res, err := c.src.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, servicesKey, res)
	return res, nil
}

// Invalidate borra la entrada de una habitación (por ejemplo al crear un contrato).
func (c *Cached) Invalidate(ctx context.Context, roomID string) {
	if err := c.store.Delete(ctx, roomKeyPrefix+roomID); err != nil {
		c.log.Warn().Err(err).Str("room_id", roomID).Msg("cache: no se pudo invalidar")
	}
}

func (c *Cached) get(ctx context.Context, key string, dst any) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: entrada corrupta")
		return false
	}
	return true
}

func (c *Cached) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
	}
}
