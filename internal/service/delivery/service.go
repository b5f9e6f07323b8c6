package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

const maxListLimit = 100

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// View is a delivery as seen by one user.
type View struct {
	Delivery     *domain.Delivery
	Capabilities domain.Capabilities
	IsRider      bool
	// Quote is set when the request recomputed the fee.
	Quote *domain.FeeQuote
}

// RiderContactVisible reports whether rider name and phone may be shown:
// to the rider, and to the payer once the delivery is shipped.
func (v View) RiderContactVisible() bool {
	d := v.Delivery
	if d == nil || d.Rider == nil {
		return false
	}
	if v.IsRider {
		return true
	}
	return d.Status == domain.StatusShipped && v.Capabilities.IsPayer
}

// Config holds the optional collaborators of Service.
type Config struct {
	Publisher       Publisher
	Notifier        RiderNotifier
	Transitions     counterVec
	PersistInterval time.Duration
	Timeout         time.Duration
}

// Service - server side delivery state machine.
type Service struct {
	repo             deliveryRepository
	fees             feeCalculator
	publisher        Publisher
	notifier         RiderNotifier
	transitions      counterVec
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time

	throttle *positionThrottle
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewService - creates a new delivery Service.
func NewService(r deliveryRepository, fees feeCalculator, logger logx.Logger, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.PersistInterval <= 0 {
		cfg.PersistInterval = 5 * time.Second
	}
	return &Service{
		repo:             r,
		fees:             fees,
		publisher:        cfg.Publisher,
		notifier:         cfg.Notifier,
		transitions:      cfg.Transitions,
		operationTimeout: cfg.Timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		throttle:         newPositionThrottle(cfg.PersistInterval),
	}
}

// Get returns the delivery with the capabilities of actor.
func (s *Service) Get(ctx context.Context, id int64, actor domain.UserID) (View, error) {
	if id <= 0 {
		return View{}, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(d, actor), nil
}

// ListAvailable returns paid deliveries still waiting for a rider.
func (s *Service) ListAvailable(ctx context.Context, limit int) ([]domain.Delivery, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.ListAvailable(ctx, limit)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Delivery, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("delivery %d: %w", id, apperr.NotFound)
	}
	return d, nil
}

func (s *Service) view(d *domain.Delivery, actor domain.UserID) View {
	return View{
		Delivery:     d,
		Capabilities: permission.Resolve(d, actor),
		IsRider:      permission.Rider(d, actor),
	}
}

func (s *Service) publish(ctx context.Context, id int64, f domain.Fragment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, id, f); err != nil {
		s.logger.Warn("live publish failed", logx.Int64("delivery_id", id), logx.Err(err))
	}
}

func (s *Service) transitioned(id int64, from, to domain.DeliveryStatus, actor domain.UserID) {
	if s.transitions != nil {
		s.transitions.WithLabelValues(string(from), string(to)).Inc()
	}
	s.logger.Info("delivery status changed",
		logx.String("event", "delivery_"+string(to)),
		logx.Int64("delivery_id", id),
		logx.String("from", string(from)),
		logx.String("to", string(to)),
		logx.Int64("actor", int64(actor)),
	)
}

// positionThrottle limits how often positions are written per delivery.
type positionThrottle struct {
	mu       sync.Mutex
	interval time.Duration
	limiters map[int64]*rate.Limiter
}

func newPositionThrottle(interval time.Duration) *positionThrottle {
	return &positionThrottle{interval: interval, limiters: make(map[int64]*rate.Limiter)}
}

func (t *positionThrottle) allow(id int64, now time.Time) bool {
	t.mu.Lock()
	lim, ok := t.limiters[id]
	if !ok {
		lim = rate.NewLimiter(rate.Every(t.interval), 1)
		t.limiters[id] = lim
	}
	t.mu.Unlock()
	return lim.AllowN(now, 1)
}

func (t *positionThrottle) forget(id int64) {
	t.mu.Lock()
	delete(t.limiters, id)
	t.mu.Unlock()
}
