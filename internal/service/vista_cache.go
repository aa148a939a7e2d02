package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catu/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const vistaVersionKey = "vista:traslados:version"

// VistaCache keeps recent traslado listings in Redis. Every write bumps a
// version counter so older entries are never read again and expire on TTL.
// A nil *VistaCache or nil client disables caching.
type VistaCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVistaCache(rdb *redis.Client, ttl time.Duration) *VistaCache {
	return &VistaCache{rdb: rdb, ttl: ttl}
}

func (c *VistaCache) enabled() bool { return c != nil && c.rdb != nil && c.ttl > 0 }

func (c *VistaCache) key(ctx context.Context, f dto.TrasladoFilter) (string, error) {
	version, err := c.rdb.Get(ctx, vistaVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", err
	}

	estados := make([]string, len(f.Estados))
	for i, e := range f.Estados {
		estados[i] = e.String()
	}
	var desde, origen, destino string
	if f.Desde != nil {
		desde = f.Desde.UTC().Format(time.RFC3339Nano)
	}
	if f.CajaOrigenID != nil {
		origen = f.CajaOrigenID.String()
	}
	if f.CajaDestinoID != nil {
		destino = f.CajaDestinoID.String()
	}
	return fmt.Sprintf("vista:traslados:v%s:%s|%s|%s|%s|%d|%d",
		version, strings.Join(estados, ","), desde, origen, destino, f.Page, f.Limit), nil
}

// Get returns the cached listing for f, if any.
func (c *VistaCache) Get(ctx context.Context, f dto.TrasladoFilter) (*dto.TrasladoListResponse, bool) {
	if !c.enabled() {
		return nil, false
	}
	key, err := c.key(ctx, f)
	if err != nil {
		log.Warn().Err(err).Msg("vista cache: version no disponible")
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out dto.TrasladoListResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *VistaCache) Set(ctx context.Context, f dto.TrasladoFilter, v *dto.TrasladoListResponse) {
	if !c.enabled() {
		return
	}
	key, err := c.key(ctx, f)
	if err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("vista cache: set failed")
	}
}

// Invalidar bumps the version after a write.
func (c *VistaCache) Invalidar(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, vistaVersionKey).Err(); err != nil {
		log.Warn().Err(err).Msg("vista cache: invalidation failed")
	}
}
