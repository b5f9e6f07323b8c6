//go:generate mockgen -source=contracts.go -destination=fee_mocks_test.go -package=fee_test

package fee

import (
	"context"
	"time"

	"textbook-logistics/internal/domain"
)

// Provider geocodes addresses and routes between points.
type Provider interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error)
}

// QuoteCache stores computed quotes by normalised inputs.
type QuoteCache interface {
	Get(ctx context.Context, key string) (domain.FeeQuote, bool, error)
	Set(ctx context.Context, key string, q domain.FeeQuote, ttl time.Duration) error
}
