package fee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// Geocoding bias, most specific first.
var locationSuffixes = []string{", Nyeri, Kenya", ", Kenya"}

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Calculator computes delivery fees between two free-text locations.
type Calculator struct {
	provider         Provider
	cache            QuoteCache
	ttl              time.Duration
	logger           logx.Logger
	quotes           counterVec
	operationTimeout time.Duration
}

// NewCalculator creates a Calculator. cache and quotes may be nil.
func NewCalculator(p Provider, cache QuoteCache, ttl time.Duration, logger logx.Logger, quotes counterVec, timeout time.Duration) *Calculator {
	if cache == nil {
		cache = NopCache{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Calculator{
		provider:         p,
		cache:            cache,
		ttl:              ttl,
		logger:           logger,
		quotes:           quotes,
		operationTimeout: timeout,
	}
}

func (c *Calculator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.operationTimeout)
}

// ComputeFee returns fee, distance, both coordinate pairs and the route for the inputs.
// Geocoding or routing failures are returned as *apperr.RoutingError.
func (c *Calculator) ComputeFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error) {
	pickup = strings.TrimSpace(pickup)
	dropoff = strings.TrimSpace(dropoff)
	if pickup == "" || dropoff == "" {
		return domain.FeeQuote{}, fmt.Errorf("pickup and dropoff are required: %w", apperr.Invalid)
	}

	key := CacheKey(pickup, dropoff, isSwap)
	if q, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("quote cache read failed", logx.String("key", key), logx.Err(err))
	} else if ok {
		c.observe("cached")
		return q, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	from, err := c.locate(ctx, pickup)
	if err != nil {
		c.observe("failed")
		return domain.FeeQuote{}, err
	}
	to, err := c.locate(ctx, dropoff)
	if err != nil {
		c.observe("failed")
		return domain.FeeQuote{}, err
	}

	route, err := c.provider.Route(ctx, from, to)
	if err != nil {
		c.observe("failed")
		return domain.FeeQuote{}, &apperr.RoutingError{Location: pickup + " -> " + dropoff, Err: err}
	}

	km := float64(route.DistanceMeters) / 1000
	fee, text := Price(km, isSwap)
	q := domain.FeeQuote{
		Fee:           fee,
		DistanceKm:    km,
		DistanceText:  text,
		PickupCoords:  from,
		DropoffCoords: to,
	}
	if len(route.Geometry) > 0 {
		r := route
		q.Route = &r
	}

	if err := c.cache.Set(ctx, key, q, c.ttl); err != nil {
		c.logger.Warn("quote cache write failed", logx.String("key", key), logx.Err(err))
	}
	c.observe("computed")
	c.logger.Debug("fee computed",
		logx.String("event", "fee_computed"),
		logx.Int64("fee", fee),
		logx.Float64("distance_km", km),
		logx.Bool("swap", isSwap),
	)
	return q, nil
}

// locate geocodes addr with each suffix in turn.
func (c *Calculator) locate(ctx context.Context, addr string) (domain.Coordinates, error) {
	var lastErr error
	for _, suffix := range locationSuffixes {
		coords, err := c.provider.Geocode(ctx, addr+suffix)
		if err == nil {
			return coords, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return domain.Coordinates{}, &apperr.RoutingError{Location: addr, Err: lastErr}
}

func (c *Calculator) observe(outcome string) {
	if c.quotes != nil {
		c.quotes.WithLabelValues(outcome).Inc()
	}
}

// CacheKey normalises the inputs of a quote.
func CacheKey(pickup, dropoff string, isSwap bool) string {
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return fmt.Sprintf("fee:v1:%t:%s|%s", isSwap, norm(pickup), norm(dropoff))
}
