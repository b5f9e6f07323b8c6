package fee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"textbook-logistics/internal/domain"
)

// NopCache never hits.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(context.Context, string) (domain.FeeQuote, bool, error) {
	return domain.FeeQuote{}, false, nil
}

// Set discards q.
func (NopCache) Set(context.Context, string, domain.FeeQuote, time.Duration) error { return nil }

// RedisCache keeps quotes in Redis as JSON.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache creates a RedisCache.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

type point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type quoteRecord struct {
	Fee            int64   `json:"fee"`
	DistanceKm     float64 `json:"distance_km"`
	DistanceText   string  `json:"distance_text"`
	Pickup         point   `json:"pickup"`
	Dropoff        point   `json:"dropoff"`
	DistanceMeters int     `json:"distance_m,omitempty"`
	Geometry       []point `json:"geometry,omitempty"`
}

// Get returns the cached quote for key.
func (c *RedisCache) Get(ctx context.Context, key string) (domain.FeeQuote, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.FeeQuote{}, false, nil
	}
	if err != nil {
		return domain.FeeQuote{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var rec quoteRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.FeeQuote{}, false, fmt.Errorf("decode quote %s: %w", key, err)
	}
	return rec.toDomain(), true, nil
}

// Set stores q under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, q domain.FeeQuote, ttl time.Duration) error {
	raw, err := json.Marshal(recordOf(q))
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func recordOf(q domain.FeeQuote) quoteRecord {
	rec := quoteRecord{
		Fee:          q.Fee,
		DistanceKm:   q.DistanceKm,
		DistanceText: q.DistanceText,
		Pickup:       point(q.PickupCoords),
		Dropoff:      point(q.DropoffCoords),
	}
	if q.Route != nil {
		rec.DistanceMeters = q.Route.DistanceMeters
		rec.Geometry = make([]point, 0, len(q.Route.Geometry))
		for _, c := range q.Route.Geometry {
			rec.Geometry = append(rec.Geometry, point(c))
		}
	}
	return rec
}

func (r quoteRecord) toDomain() domain.FeeQuote {
	q := domain.FeeQuote{
		Fee:           r.Fee,
		DistanceKm:    r.DistanceKm,
		DistanceText:  r.DistanceText,
		PickupCoords:  domain.Coordinates(r.Pickup),
		DropoffCoords: domain.Coordinates(r.Dropoff),
	}
	if len(r.Geometry) > 0 {
		route := &domain.Route{DistanceMeters: r.DistanceMeters, Geometry: make([]domain.Coordinates, 0, len(r.Geometry))}
		for _, p := range r.Geometry {
			route.Geometry = append(route.Geometry, domain.Coordinates(p))
		}
		q.Route = route
	}
	return q
}
