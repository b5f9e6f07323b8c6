package tracking

import (
	"context"
	"sync"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// startSampler watches the device and pushes every sample without waiting for
// the previous push to finish.
func (s *Session) startSampler(ctx context.Context) {
	ch, err := s.cfg.Locations.Watch(ctx, WatchOptions{HighAccuracy: true})
	if err != nil {
		s.logger.Warn("location watch failed", logx.Err(err))
		s.setNotice(err)
		return
	}
	s.spawn(func() { s.sampleLoop(ctx, ch) })
	s.spawn(func() { s.pushLoop(ctx) })
}

func (s *Session) sampleLoop(ctx context.Context, ch <-chan domain.Coordinates) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			s.samples.push(c)
		}
	}
}

func (s *Session) pushLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.samples.ready():
			for {
				c, ok := s.samples.pop()
				if !ok {
					break
				}
				s.push(ctx, c)
			}
		}
	}
}

// push sends one sample over the rider channel, or over HTTP when there is none.
// Failures are logged and the sample is dropped.
func (s *Session) push(ctx context.Context, c domain.Coordinates) {
	s.mu.Lock()
	shipped := s.delivery != nil && s.delivery.Status == domain.StatusShipped
	conn, rider := s.conn, s.riderCh
	s.mu.Unlock()

	if !shipped || ctx.Err() != nil {
		return
	}
	if conn != nil && rider {
		err := conn.Send(c)
		if err == nil {
			return
		}
		s.logger.Debug("rider sample not sent on channel", logx.Err(err))
	}

	pctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	if err := s.backend.PushRiderPosition(pctx, s.cfg.DeliveryID, c); err != nil && ctx.Err() == nil {
		s.logger.Debug("rider sample dropped", logx.Err(err))
	}
}

// sampleQueue is a bounded FIFO that drops the oldest sample when full.
type sampleQueue struct {
	mu      sync.Mutex
	buf     []domain.Coordinates
	max     int
	dropped uint64
	signal  chan struct{}
}

func newSampleQueue(max int) *sampleQueue {
	return &sampleQueue{
		buf:    make([]domain.Coordinates, 0, max),
		max:    max,
		signal: make(chan struct{}, 1),
	}
}

func (q *sampleQueue) push(c domain.Coordinates) {
	q.mu.Lock()
	if len(q.buf) == q.max {
		copy(q.buf, q.buf[1:])
		q.buf = q.buf[:len(q.buf)-1]
		q.dropped++
	}
	q.buf = append(q.buf, c)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *sampleQueue) pop() (domain.Coordinates, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return domain.Coordinates{}, false
	}
	c := q.buf[0]
	copy(q.buf, q.buf[1:])
	q.buf = q.buf[:len(q.buf)-1]
	return c, true
}

func (q *sampleQueue) ready() <-chan struct{} { return q.signal }

func (q *sampleQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Dropped returns how many samples were discarded because the queue was full.
func (q *sampleQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
