package deliveryapi

import (
	"context"
	"time"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/tracking"
)

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingBackend
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingBackend retries the idempotent reads and writes of a tracking.Backend.
// Cancel, payment and position calls go through once.
type RetryingBackend struct {
	next    tracking.Backend
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingBackend конструктор который проверяет, что next не nil и возвращает RetryingBackend
func NewRetryingBackend(next tracking.Backend, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingBackend {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingBackend{next: next, logger: logger, retries: retries, cfg: cfg}
}

// FetchDelivery retries the wrapped FetchDelivery.
func (g *RetryingBackend) FetchDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	var out *domain.Delivery
	err := g.do(ctx, "FetchDelivery", func() error {
		d, err := g.next.FetchDelivery(ctx, id)
		if err == nil {
			out = d
		}
		return err
	})
	return out, err
}

// UpdateDelivery retries the wrapped UpdateDelivery. The patch carries absolute values.
func (g *RetryingBackend) UpdateDelivery(ctx context.Context, id int64, p domain.DeliveryPatch) (*domain.Delivery, error) {
	var out *domain.Delivery
	err := g.do(ctx, "UpdateDelivery", func() error {
		d, err := g.next.UpdateDelivery(ctx, id, p)
		if err == nil {
			out = d
		}
		return err
	})
	return out, err
}

// ComputeFee retries the wrapped ComputeFee.
func (g *RetryingBackend) ComputeFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error) {
	var out domain.FeeQuote
	err := g.do(ctx, "ComputeFee", func() error {
		q, err := g.next.ComputeFee(ctx, pickup, dropoff, isSwap)
		if err == nil {
			out = q
		}
		return err
	})
	return out, err
}

// CancelDelivery is not retried.
func (g *RetryingBackend) CancelDelivery(ctx context.Context, id int64) error {
	return g.next.CancelDelivery(ctx, id)
}

// InitiatePayment is not retried.
func (g *RetryingBackend) InitiatePayment(ctx context.Context, id int64, phone string) (domain.PaymentInitiation, error) {
	return g.next.InitiatePayment(ctx, id, phone)
}

// PushRiderPosition is fire-and-forget.
func (g *RetryingBackend) PushRiderPosition(ctx context.Context, id int64, c domain.Coordinates) error {
	return g.next.PushRiderPosition(ctx, id, c)
}

// DialLive is not retried. A dropped channel is covered by polling.
func (g *RetryingBackend) DialLive(ctx context.Context, id int64, rider bool) (tracking.LiveConn, error) {
	return g.next.DialLive(ctx, id, rider)
}

func (g *RetryingBackend) do(ctx context.Context, method string, call func() error) error {
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
		g.logger.Warn("delivery api retry",
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

var _ tracking.Backend = (*Client)(nil)
var _ tracking.Backend = (*RetryingBackend)(nil)
