package tracking

import (
	"context"
	"time"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

func (s *Session) pollLoop(ctx context.Context) {
	t := time.NewTicker(s.cfg.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.reconcile(ctx)
		}
	}
}

// reconcile replaces local state with the authoritative record.
// A failed fetch leaves the state stale but viewable.
func (s *Session) reconcile(ctx context.Context) {
	d, err := s.backend.FetchDelivery(ctx, s.cfg.DeliveryID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Warn("reconciliation poll failed", logx.Err(err))
		s.setNotice(err)
		s.emit()
		return
	}
	s.apply(ctx, d)
	s.emit()
}

// apply overwrites status, fee, locations, rider and position with d.
// The route is recomputed only when the endpoints changed since the last
// successful computation.
func (s *Session) apply(ctx context.Context, d *domain.Delivery) {
	key := domain.RouteKeyOf(d)

	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	prev := s.delivery
	s.delivery = d.Clone()
	if s.delivery.Status != domain.StatusShipped {
		s.delivery.Position = nil
	}
	need := d.EndpointsKnown() && (s.quoteKey == nil || *s.quoteKey != key)
	s.mu.Unlock()

	if prev != nil && prev.Status != d.Status {
		s.logger.Info("delivery status observed",
			logx.String("event", "delivery_status_observed"),
			logx.String("from", string(prev.Status)),
			logx.String("to", string(d.Status)),
		)
	}

	if need {
		s.refreshQuote(ctx, key)
	}
	if d.Status.Terminal() {
		s.finish(string(d.Status))
	}
}

func (s *Session) refreshQuote(ctx context.Context, key domain.RouteKey) {
	q, err := s.backend.ComputeFee(ctx, key.Pickup, key.Dropoff, key.IsSwap)
	if err != nil {
		if ctx.Err() == nil {
			s.notifyRouting(err)
		}
		return
	}
	s.storeQuote(q, key)
}

func (s *Session) storeQuote(q domain.FeeQuote, key domain.RouteKey) {
	s.mu.Lock()
	s.quote = &q
	s.quoteKey = &key
	s.mu.Unlock()
}
