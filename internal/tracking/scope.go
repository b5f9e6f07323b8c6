package tracking

import (
	"context"

	"textbook-logistics/internal/logx"
)

// WithSession opens a session, runs fn and closes the session on every exit path.
func WithSession(ctx context.Context, backend Backend, cfg Config, logger logx.Logger, fn func(*Session) error) (err error) {
	s := NewSession(backend, cfg, logger)
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	if err := s.Open(ctx); err != nil {
		return err
	}
	return fn(s)
}
