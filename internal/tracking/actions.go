package tracking

import (
	"context"
	"fmt"
	"strings"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

// EditEndpoint changes the pickup or dropoff location.
//
// Locked statuses and missing capabilities are rejected before any backend call.
// When both endpoints are known the fee is computed first and sent with the
// edited location; the server stores it with both locations in one update. A fee failure persists nothing and leaves
// the known fee untouched.
func (s *Session) EditEndpoint(ctx context.Context, e domain.Endpoint, location string) (State, error) {
	d, err := s.current()
	if err != nil {
		return State{}, err
	}
	if !e.Valid() {
		return State{}, fmt.Errorf("unknown endpoint %q: %w", e, apperr.Invalid)
	}
	if d.Status.Locked() {
		return State{}, apperr.Rejected("edit", string(d.Status), "locations are locked")
	}
	if !permission.Resolve(d, s.cfg.Viewer).CanEdit(e) {
		return State{}, apperr.Denied("edit", "not allowed to edit the "+string(e)+" location")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return State{}, fmt.Errorf("location must not be empty: %w", apperr.Invalid)
	}

	pickup, dropoff := d.PickupLocation, d.DropoffLocation
	var patch domain.DeliveryPatch
	if e == domain.EndpointPickup {
		pickup = location
		patch.PickupLocation = &pickup
	} else {
		dropoff = location
		patch.DropoffLocation = &dropoff
	}

	key := domain.RouteKey{Pickup: pickup, Dropoff: dropoff, IsSwap: d.IsSwap()}
	var quote *domain.FeeQuote
	if pickup != "" && dropoff != "" {
		q, err := s.backend.ComputeFee(ctx, pickup, dropoff, key.IsSwap)
		if err != nil {
			s.notifyRouting(err)
			s.emit()
			return s.Snapshot(), err
		}
		patch.TransportCost = &q.Fee
		quote = &q
	}

	fresh, err := s.backend.UpdateDelivery(ctx, s.cfg.DeliveryID, patch)
	if err != nil {
		s.logger.Warn("location update failed", logx.Err(err))
		s.setNotice(err)
		s.emit()
		return s.Snapshot(), err
	}

	s.logger.Info("delivery location edited",
		logx.String("event", "delivery_location_edited"),
		logx.String("endpoint", string(e)),
		logx.Int64("transport_cost", fresh.TransportCost),
	)
	s.setNotice(nil)
	if quote != nil {
		s.storeQuote(*quote, key)
	}
	s.apply(ctx, fresh)
	s.emit()
	return s.Snapshot(), nil
}

// Cancel cancels the delivery. Only the payer may cancel, and only while
// pending or paid. On success polling and live tracking stop at once.
func (s *Session) Cancel(ctx context.Context) error {
	d, err := s.current()
	if err != nil {
		return err
	}
	if !d.Status.Cancellable() {
		return apperr.Rejected("cancel", string(d.Status), "delivery can no longer be cancelled")
	}
	if !permission.Resolve(d, s.cfg.Viewer).IsPayer {
		return apperr.Denied("cancel", "only the payer can cancel")
	}

	if err := s.backend.CancelDelivery(ctx, s.cfg.DeliveryID); err != nil {
		s.logger.Warn("cancel failed", logx.Err(err))
		s.setNotice(err)
		s.emit()
		return err
	}

	s.mu.Lock()
	if s.delivery != nil {
		s.delivery.Status = domain.StatusCancelled
		s.delivery.Position = nil
	}
	s.notice = nil
	s.mu.Unlock()

	s.finish(string(domain.StatusCancelled))
	s.emit()
	return nil
}

// Pay hands the payment off to the collaborator. The returned initiation is
// not a confirmation: the delivery becomes paid when a poll observes it.
func (s *Session) Pay(ctx context.Context, phone string) (domain.PaymentInitiation, error) {
	d, err := s.current()
	if err != nil {
		return domain.PaymentInitiation{}, err
	}
	if d.Status != domain.StatusPending {
		return domain.PaymentInitiation{}, apperr.Rejected("pay", string(d.Status), "delivery is not awaiting payment")
	}
	if !permission.Resolve(d, s.cfg.Viewer).IsPayer {
		return domain.PaymentInitiation{}, apperr.Denied("pay", "only the payer can pay")
	}
	normalized, ok := domain.NormalizePhone(phone)
	if !ok {
		return domain.PaymentInitiation{}, fmt.Errorf("invalid phone %q: %w", phone, apperr.Invalid)
	}

	res, err := s.backend.InitiatePayment(ctx, s.cfg.DeliveryID, normalized)
	if err != nil {
		if !apperr.IsPaymentInitiation(err) && !apperr.IsRejected(err) {
			err = &apperr.PaymentInitiationError{DeliveryID: s.cfg.DeliveryID, Err: err}
		}
		s.logger.Warn("payment initiation failed", logx.Err(err))
		s.setNotice(err)
		s.emit()
		return domain.PaymentInitiation{}, err
	}

	s.logger.Info("payment initiated",
		logx.String("event", "payment_initiated"),
		logx.String("checkout_id", res.CheckoutID),
		logx.Bool("initiated", res.Initiated),
	)
	s.mu.Lock()
	s.payment = &res
	s.notice = nil
	s.mu.Unlock()
	s.emit()
	return res, nil
}

// Refresh runs one reconciliation poll now.
func (s *Session) Refresh(ctx context.Context) (State, error) {
	if _, err := s.current(); err != nil {
		return State{}, err
	}
	s.reconcile(ctx)
	return s.Snapshot(), nil
}
