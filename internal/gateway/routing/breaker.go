package routing

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// BreakerConfig configures BreakerProvider.
type BreakerConfig struct {
	FailureThreshold uint32
	Timeout          time.Duration
}

// BreakerProvider stops calling the provider after consecutive failures.
// "No results" answers are not failures.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[interface{}]
}

// NewBreakerProvider wraps next with a circuit breaker.
func NewBreakerProvider(next Provider, logger logx.Logger, cfg BreakerConfig) *BreakerProvider {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:    "routing",
		Timeout: cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoResults) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				logx.String("breaker", name),
				logx.String("from", from.String()),
				logx.String("to", to.String()),
			)
		},
	}
	return &BreakerProvider{next: next, cb: gobreaker.NewCircuitBreaker[interface{}](settings)}
}

// State returns the breaker state for monitoring.
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}

// Geocode calls the provider unless the breaker is open.
func (b *BreakerProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Geocode(ctx, address)
	})
	if err != nil {
		return domain.Coordinates{}, translateBreakerErr(err)
	}
	return v.(domain.Coordinates), nil
}

// Route calls the provider unless the breaker is open.
func (b *BreakerProvider) Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Route(ctx, from, to)
	})
	if err != nil {
		return domain.Route{}, translateBreakerErr(err)
	}
	return v.(domain.Route), nil
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}
