package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

const (
	// DefaultPollInterval is the reconciliation period.
	DefaultPollInterval = 5 * time.Second
	defaultSampleQueue  = 16
	pushTimeout         = 3 * time.Second
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("tracking: session closed")

// Config describes one tracking session.
type Config struct {
	DeliveryID   int64
	Viewer       domain.UserID
	PollInterval time.Duration
	// Locations is the device location source. When set and the viewer is the
	// assigned rider of a shipped delivery, every sample is pushed.
	Locations   LocationProvider
	SampleQueue int
	// OnChange, when set, receives a snapshot after every applied update.
	OnChange func(State)
}

// State is a snapshot of what the session knows.
type State struct {
	Delivery            *domain.Delivery
	Capabilities        domain.Capabilities
	IsRider             bool
	RiderContactVisible bool
	Quote               *domain.FeeQuote
	Position            *domain.Coordinates
	LiveActive          bool
	Payment             *domain.PaymentInitiation
	Notice              error
	Finished            bool
}

// Session is the live view of one delivery.
//
// Open starts the poll loop, the live channel reader and, for the rider, the
// sample loop. Close stops all of them and waits. Close is idempotent.
type Session struct {
	cfg     Config
	backend Backend
	logger  logx.Logger

	mu       sync.Mutex
	delivery *domain.Delivery
	quote    *domain.FeeQuote
	quoteKey *domain.RouteKey
	payment  *domain.PaymentInitiation
	notice   error
	conn     LiveConn
	riderCh  bool
	finished bool

	state     sessionState
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	samples   *sampleQueue
}

type sessionState int

const (
	stateNew sessionState = iota
	stateOpen
	stateClosed
)

// NewSession creates a session. Nothing runs until Open.
func NewSession(backend Backend, cfg Config, logger logx.Logger) *Session {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.SampleQueue <= 0 {
		cfg.SampleQueue = defaultSampleQueue
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Session{
		cfg:     cfg,
		backend: backend,
		logger:  logger.With(logx.Int64("delivery_id", cfg.DeliveryID)),
		samples: newSampleQueue(cfg.SampleQueue),
	}
}

// Open fetches the delivery and starts the background loops.
// If the first fetch fails nothing is started and the error is returned.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case stateOpen:
		s.mu.Unlock()
		return errors.New("tracking: session already open")
	case stateClosed:
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	d, err := s.backend.FetchDelivery(ctx, s.cfg.DeliveryID)
	if err != nil {
		return fmt.Errorf("open tracking session: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	if s.state != stateNew {
		s.mu.Unlock()
		cancel()
		return ErrClosed
	}
	s.state = stateOpen
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Info("tracking session opened",
		logx.String("event", "tracking_session_opened"),
		logx.Int64("viewer", int64(s.cfg.Viewer)),
		logx.String("status", string(d.Status)),
	)

	// the first computation of every session revalidates the route
	s.apply(runCtx, d)

	if !d.Status.Terminal() {
		s.openLive(runCtx, d)
	}

	s.spawn(func() { s.pollLoop(runCtx) })

	if s.cfg.Locations != nil && permission.Rider(d, s.cfg.Viewer) {
		s.startSampler(runCtx)
	}

	s.emit()
	return nil
}

// Close stops polling, closes the live channel and waits for every loop to exit.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		wasOpen := s.state == stateOpen
		s.state = stateClosed
		cancel := s.cancel
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		s.stopLive()
		s.wg.Wait()

		if wasOpen {
			s.logger.Info("tracking session closed",
				logx.String("event", "tracking_session_closed"),
				logx.Any("samples_dropped", s.samples.Dropped()),
			)
		}
	})
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := State{
		LiveActive: s.conn != nil,
		Notice:     s.notice,
		Finished:   s.finished,
	}
	if s.quote != nil {
		q := *s.quote
		st.Quote = &q
	}
	if s.payment != nil {
		p := *s.payment
		st.Payment = &p
	}
	d := s.delivery
	if d == nil {
		return st
	}
	st.Delivery = d.Clone()
	st.Capabilities = permission.Resolve(d, s.cfg.Viewer)
	st.IsRider = permission.Rider(d, s.cfg.Viewer)
	shipped := d.Status == domain.StatusShipped
	st.RiderContactVisible = d.Rider != nil && shipped && (st.IsRider || st.Capabilities.IsPayer)
	if shipped && d.Position != nil {
		p := *d.Position
		st.Position = &p
	}
	return st
}

func (s *Session) emit() {
	if s.cfg.OnChange == nil {
		return
	}
	s.cfg.OnChange(s.Snapshot())
}

func (s *Session) setNotice(err error) {
	s.mu.Lock()
	s.notice = err
	s.mu.Unlock()
}

func (s *Session) current() (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateOpen {
		return nil, ErrClosed
	}
	return s.delivery.Clone(), nil
}

// finish stops polling and live tracking without waiting. Close still has to be called.
func (s *Session) finish(reason string) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	cancel := s.cancel
	s.mu.Unlock()

	s.logger.Info("tracking stopped", logx.String("reason", reason))
	if cancel != nil {
		cancel()
	}
	s.stopLive()
}

// notifyRouting records a routing failure without touching the known fee.
func (s *Session) notifyRouting(err error) {
	s.logger.Warn("fee computation failed", logx.Err(err))
	s.setNotice(err)
}

// spawn runs fn in a tracked goroutine unless the session is no longer open.
func (s *Session) spawn(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateOpen {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
	return true
}
