package tracking

import (
	"context"
	"errors"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

// openLive dials the live channel once. There is no reconnect: polling covers
// gaps until the next session is opened.
func (s *Session) openLive(ctx context.Context, d *domain.Delivery) {
	rider := d.Status == domain.StatusShipped && permission.Rider(d, s.cfg.Viewer)
	conn, err := s.backend.DialLive(ctx, s.cfg.DeliveryID, rider)
	if err != nil {
		s.logger.Warn("live channel unavailable", logx.Err(channelError(s.cfg.DeliveryID, err)))
		return
	}

	s.mu.Lock()
	if s.state != stateOpen || s.finished {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.conn = conn
	s.riderCh = rider
	s.mu.Unlock()

	if !s.spawn(func() { s.readLoop(ctx, conn) }) {
		s.dropConn(conn)
	}
}

func (s *Session) readLoop(ctx context.Context, conn LiveConn) {
	for {
		f, err := conn.Read()
		if err != nil {
			if ctx.Err() != nil || !s.isCurrent(conn) {
				return
			}
			s.logger.Warn("live channel dropped", logx.Err(channelError(s.cfg.DeliveryID, err)))
			s.dropConn(conn)
			s.emit()
			return
		}
		s.merge(f)
	}
}

// merge applies a fragment field by field. Absent fields keep their value.
func (s *Session) merge(f domain.Fragment) {
	if f.Empty() {
		return
	}

	s.mu.Lock()
	d := s.delivery
	if d == nil || s.finished {
		s.mu.Unlock()
		return
	}
	var terminal domain.DeliveryStatus
	if f.Status != nil && f.Status.Valid() {
		d.Status = *f.Status
		if d.Status.Terminal() {
			terminal = d.Status
		}
	}
	if f.Latitude != nil || f.Longitude != nil {
		var p domain.Coordinates
		if d.Position != nil {
			p = *d.Position
		}
		if f.Latitude != nil {
			p.Lat = *f.Latitude
		}
		if f.Longitude != nil {
			p.Lng = *f.Longitude
		}
		d.Position = &p
	}
	s.mu.Unlock()

	if terminal != "" {
		s.finish(string(terminal))
	}
	s.emit()
}

func (s *Session) isCurrent(conn LiveConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn == conn
}

func (s *Session) dropConn(conn LiveConn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.riderCh = false
	}
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Session) stopLive() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.riderCh = false
	s.mu.Unlock()

	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		s.logger.Debug("live channel close", logx.Err(err))
	}
}

func channelError(id int64, err error) error {
	var ce *apperr.ChannelError
	if errors.As(err, &ce) {
		return err
	}
	return &apperr.ChannelError{DeliveryID: id, Err: err}
}
