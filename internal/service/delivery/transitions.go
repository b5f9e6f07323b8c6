package delivery

import (
	"context"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
)

// Cancel moves a pending or paid delivery to cancelled. Only the payer may cancel.
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.UserID) (View, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !permission.Resolve(d, actor).IsPayer {
		return View{}, apperr.Denied("cancel", "only the payer can cancel")
	}
	if !d.Status.Cancellable() {
		return View{}, apperr.Rejected("cancel", string(d.Status), "delivery can no longer be cancelled")
	}

	ok, err := s.repo.TransitionStatus(ctx, id, d.Status, domain.StatusCancelled)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, apperr.Rejected("cancel", string(d.Status), "status changed concurrently")
	}
	s.transitioned(id, d.Status, domain.StatusCancelled, actor)
	s.publish(ctx, id, domain.StatusFragment(domain.StatusCancelled))
	s.throttle.forget(id)

	fresh, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(fresh, actor), nil
}

// AcceptJob assigns rider to a paid delivery without a rider and ships it.
func (s *Service) AcceptJob(ctx context.Context, id int64, rider domain.UserID) (View, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if d.Status != domain.StatusPaid {
		return View{}, apperr.Rejected("accept", string(d.Status), "job is not available")
	}
	if d.Rider != nil {
		return View{}, apperr.Rejected("accept", string(d.Status), "job already taken")
	}
	if payer, ok := d.Payer(); ok && payer == rider {
		return View{}, apperr.Denied("accept", "payer cannot ride own delivery")
	}

	ok, err := s.repo.AssignRider(ctx, id, rider)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, apperr.Rejected("accept", string(d.Status), "job already taken")
	}
	s.transitioned(id, domain.StatusPaid, domain.StatusShipped, rider)
	s.publish(ctx, id, domain.StatusFragment(domain.StatusShipped))

	fresh, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(fresh, rider), nil
}

// Complete marks a shipped delivery as delivered. Only the assigned rider may complete.
func (s *Service) Complete(ctx context.Context, id int64, rider domain.UserID) (View, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !d.HasRider(rider) {
		return View{}, apperr.Denied("complete", "only the assigned rider can complete")
	}
	if d.Status != domain.StatusShipped {
		return View{}, apperr.Rejected("complete", string(d.Status), "delivery is not in transit")
	}

	ok, err := s.repo.Complete(ctx, id, rider)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, apperr.Rejected("complete", string(d.Status), "status changed concurrently")
	}
	s.transitioned(id, domain.StatusShipped, domain.StatusDelivered, rider)
	s.publish(ctx, id, domain.StatusFragment(domain.StatusDelivered))
	s.throttle.forget(id)

	fresh, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(fresh, rider), nil
}

// OnPaid runs the side effects of a confirmed payment.
// The status write itself belongs to the payment transaction.
func (s *Service) OnPaid(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	s.transitioned(id, domain.StatusPending, domain.StatusPaid, 0)
	s.publish(ctx, id, domain.StatusFragment(domain.StatusPaid))

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.NotifyJobAvailable(ctx, d); err != nil {
		s.logger.Warn("rider notification failed",
			logx.Int64("delivery_id", id),
			logx.Err(err),
		)
	}
	return nil
}
