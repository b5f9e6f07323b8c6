package delivery

import (
	"context"
	"fmt"
	"math"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// AuthorizeRider checks that rider may push positions for the delivery.
func (s *Service) AuthorizeRider(ctx context.Context, id int64, rider domain.UserID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !d.HasRider(rider) {
		return apperr.Denied("track", "only the assigned rider can share a position")
	}
	if d.Status != domain.StatusShipped {
		return apperr.Rejected("track", string(d.Status), "delivery is not in transit")
	}
	return nil
}

// PushPosition fans a sample out and persists it at most once per persist interval.
// The caller must have passed AuthorizeRider for this delivery.
func (s *Service) PushPosition(ctx context.Context, id int64, rider domain.UserID, c domain.Coordinates) error {
	if err := validCoordinates(c); err != nil {
		return err
	}
	s.publish(ctx, id, domain.PositionFragment(c.Lat, c.Lng))

	if !s.throttle.allow(id, s.now()) {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdatePosition(ctx, id, rider, c)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("position not persisted",
			logx.Int64("delivery_id", id),
			logx.Int64("rider", int64(rider)),
		)
	}
	return nil
}

// RecordPosition authorizes rider and pushes one sample.
func (s *Service) RecordPosition(ctx context.Context, id int64, rider domain.UserID, c domain.Coordinates) error {
	if err := validCoordinates(c); err != nil {
		return err
	}
	if err := s.AuthorizeRider(ctx, id, rider); err != nil {
		return err
	}
	return s.PushPosition(ctx, id, rider, c)
}

func validCoordinates(c domain.Coordinates) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("coordinates %v,%v out of range: %w", c.Lat, c.Lng, apperr.Invalid)
	}
	return nil
}
