package routing

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// Provider geocodes addresses and routes between points.
type Provider interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error)
}

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingProvider
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingProvider retries transient provider failures with exponential backoff.
type RetryingProvider struct {
	next    Provider
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingProvider конструктор который проверяет, что next не nil и возвращает RetryingProvider
func NewRetryingProvider(next Provider, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingProvider {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingProvider{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Geocode retries the wrapped Geocode.
func (g *RetryingProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	var out domain.Coordinates
	err := g.do(ctx, "Geocode", func() error {
		c, err := g.next.Geocode(ctx, address)
		if err == nil {
			out = c
		}
		return err
	})
	return out, err
}

// Route retries the wrapped Route.
func (g *RetryingProvider) Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error) {
	var out domain.Route
	err := g.do(ctx, "Route", func() error {
		r, err := g.next.Route(ctx, from, to)
		if err == nil {
			out = r
		}
		return err
	})
	return out, err
}

func (g *RetryingProvider) do(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("routing provider retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	if errors.Is(err, ErrNoResults) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "OVER_QUERY_LIMIT") || strings.Contains(msg, "UNKNOWN_ERROR")
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
