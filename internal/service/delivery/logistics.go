package delivery

import (
	"context"
	"fmt"
	"strings"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

// UpdateEndpoints applies an endpoint edit.
//
// The fee is recomputed from both resulting endpoints and persisted together with them
// in one guarded update. A client supplied transport cost is never trusted. If the fee
// cannot be computed nothing is written and the *apperr.RoutingError is returned.
func (s *Service) UpdateEndpoints(ctx context.Context, id int64, actor domain.UserID, p domain.DeliveryPatch) (View, error) {
	if p.PickupLocation == nil && p.DropoffLocation == nil {
		return View{}, fmt.Errorf("nothing to update: %w", apperr.Invalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if d.Status.Locked() {
		return View{}, apperr.Rejected("edit", string(d.Status), "locations are locked")
	}
	caps := permission.Resolve(d, actor)
	if !caps.AllowsPatch(p) {
		return View{}, apperr.Denied("edit", "not allowed to edit this location")
	}

	pickup, dropoff := d.PickupLocation, d.DropoffLocation
	if p.PickupLocation != nil {
		pickup = strings.TrimSpace(*p.PickupLocation)
	}
	if p.DropoffLocation != nil {
		dropoff = strings.TrimSpace(*p.DropoffLocation)
	}
	if (p.PickupLocation != nil && pickup == "") || (p.DropoffLocation != nil && dropoff == "") {
		return View{}, fmt.Errorf("location must not be empty: %w", apperr.Invalid)
	}

	update := domain.LogisticsUpdate{
		DeliveryID:      id,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		TransportCost:   d.TransportCost,
	}

	var quote *domain.FeeQuote
	if pickup != "" && dropoff != "" {
		q, err := s.fees.ComputeFee(ctx, pickup, dropoff, d.IsSwap())
		if err != nil {
			s.logger.Warn("fee recomputation failed",
				logx.Int64("delivery_id", id),
				logx.Err(err),
			)
			return View{}, err
		}
		update.TransportCost = q.Fee
		quote = &q
	}

	if p.TransportCost != nil && *p.TransportCost != update.TransportCost {
		s.logger.Warn("client transport cost ignored",
			logx.Int64("delivery_id", id),
			logx.Int64("client_cost", *p.TransportCost),
			logx.Int64("server_cost", update.TransportCost),
		)
	}

	ok, err := s.repo.UpdateLogistics(ctx, update)
	if err != nil {
		return View{}, err
	}
	if !ok {
		// status moved to a locked one after we read it
		current, err := s.load(ctx, id)
		if err != nil {
			return View{}, err
		}
		return View{}, apperr.Rejected("edit", string(current.Status), "locations are locked")
	}

	s.logger.Info("delivery locations updated",
		logx.String("event", "delivery_locations_updated"),
		logx.Int64("delivery_id", id),
		logx.Int64("actor", int64(actor)),
		logx.Int64("transport_cost", update.TransportCost),
	)

	fresh, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	v := s.view(fresh, actor)
	v.Quote = quote
	return v, nil
}

// QuoteFee computes a fee without persisting anything.
func (s *Service) QuoteFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error) {
	return s.fees.ComputeFee(ctx, pickup, dropoff, isSwap)
}
