package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/permission"
	"textbook-logistics/internal/ports/deliverytx"
)

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Service initiates payments and applies their results.
type Service struct {
	deliveries       deliveryReader
	attempts         attemptStore
	gateway          Gateway
	paid             PaidHook
	payments         counterVec
	operationTimeout time.Duration
	logger           logx.Logger
	newCode          func() string
}

// NewService creates a new payment Service. payments may be nil.
func NewService(
	deliveries deliveryReader,
	attempts attemptStore,
	gateway Gateway,
	paid PaidHook,
	payments counterVec,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		deliveries:       deliveries,
		attempts:         attempts,
		gateway:          gateway,
		paid:             paid,
		payments:         payments,
		operationTimeout: timeout,
		logger:           logger,
		newCode:          trackingCode,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// trackingCode returns a short opaque code such as "TB-3F9A1C2E".
func trackingCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TB-" + strings.ToUpper(id[:8])
}

func (s *Service) count(stage string) {
	if s.payments != nil {
		s.payments.WithLabelValues(stage).Inc()
	}
}

// Initiate sends an STK push for the delivery fee to phone.
// Only the payer of a pending delivery with a known fee may pay.
func (s *Service) Initiate(ctx context.Context, deliveryID int64, actor domain.UserID, phone string) (domain.PaymentInitiation, error) {
	normalized, ok := domain.NormalizePhone(phone)
	if !ok {
		return domain.PaymentInitiation{}, fmt.Errorf("phone %q: %w", phone, apperr.Invalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return domain.PaymentInitiation{}, err
	}
	if d == nil {
		return domain.PaymentInitiation{}, fmt.Errorf("delivery %d: %w", deliveryID, apperr.NotFound)
	}
	if !permission.Resolve(d, actor).IsPayer {
		return domain.PaymentInitiation{}, apperr.Denied("pay", "only the payer can pay")
	}
	if d.Status != domain.StatusPending {
		return domain.PaymentInitiation{}, apperr.Rejected("pay", string(d.Status), "delivery is not awaiting payment")
	}
	if d.TransportCost <= 0 {
		return domain.PaymentInitiation{}, apperr.Rejected("pay", string(d.Status), "delivery fee is not known yet")
	}

	res, err := s.gateway.STKPush(ctx, domain.PaymentRequest{
		DeliveryID: d.ID,
		Phone:      normalized,
		Amount:     d.TransportCost,
		Reference:  strconv.FormatInt(d.ID, 10),
	})
	if err != nil {
		s.count("initiation_failed")
		s.logger.Warn("stk push failed",
			logx.Int64("delivery_id", d.ID),
			logx.Err(err),
		)
		return domain.PaymentInitiation{}, &apperr.PaymentInitiationError{DeliveryID: d.ID, Err: err}
	}
	if !res.Initiated || res.CheckoutID == "" {
		s.count("initiation_failed")
		return domain.PaymentInitiation{}, &apperr.PaymentInitiationError{
			DeliveryID: d.ID,
			Err:        errors.New("payment request was not accepted"),
		}
	}

	attempt := &domain.PaymentAttempt{
		DeliveryID: d.ID,
		CheckoutID: res.CheckoutID,
		Phone:      normalized,
		Amount:     d.TransportCost,
		Status:     domain.PaymentInitiated,
	}
	if err := s.attempts.Insert(ctx, attempt); err != nil {
		return domain.PaymentInitiation{}, fmt.Errorf("record payment attempt: %w", err)
	}

	s.count("initiated")
	s.logger.Info("payment initiated",
		logx.String("event", "payment_initiated"),
		logx.Int64("delivery_id", d.ID),
		logx.String("checkout_id", res.CheckoutID),
		logx.Int64("amount", d.TransportCost),
	)
	return res, nil
}

// HandleResult applies a collaborator result. Results for unknown or already settled
// checkouts write nothing. A redelivered success for a delivery still in paid
// runs the paid side effects again, so a failed OnPaid is retried with the event.
func (s *Service) HandleResult(ctx context.Context, r domain.PaymentResult) error {
	if strings.TrimSpace(r.CheckoutID) == "" {
		return fmt.Errorf("checkout id is required: %w", apperr.Invalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		applied  bool
		replayed bool
		paidID   int64
	)
	err := s.deliveries.WithTx(ctx, func(tx deliverytx.Repository) error {
		p, err := tx.GetPaymentForUpdate(ctx, r.CheckoutID)
		if err != nil {
			return err
		}
		if p == nil {
			s.logger.Warn("payment result for unknown checkout", logx.String("checkout_id", r.CheckoutID))
			return nil
		}
		if p.Status == domain.PaymentConfirmed && r.Succeeded() {
			// a redelivered result whose side effects may not have run
			d, err := tx.GetDeliveryForUpdate(ctx, p.DeliveryID)
			if err != nil {
				return err
			}
			if d != nil && d.Status == domain.StatusPaid {
				replayed, paidID = true, p.DeliveryID
			}
			return nil
		}
		if p.Status != domain.PaymentInitiated {
			return nil
		}
		applied = true

		if !r.Succeeded() {
			return tx.SetPaymentStatus(ctx, p.ID, domain.PaymentFailed, "")
		}
		if err := tx.SetPaymentStatus(ctx, p.ID, domain.PaymentConfirmed, r.Receipt); err != nil {
			return err
		}
		ok, err := tx.MarkPaid(ctx, p.DeliveryID, s.newCode())
		if err != nil {
			return err
		}
		if ok {
			paidID = p.DeliveryID
		}
		return nil
	})
	if err != nil {
		return err
	}
	if replayed {
		s.logger.Info("payment result redelivered, replaying paid side effects",
			logx.Int64("delivery_id", paidID),
			logx.String("checkout_id", r.CheckoutID),
		)
		if s.paid != nil {
			return s.paid.OnPaid(ctx, paidID)
		}
		return nil
	}
	if !applied {
		return nil
	}

	if !r.Succeeded() {
		s.count("failed")
		s.logger.Info("payment failed",
			logx.String("event", "payment_failed"),
			logx.String("checkout_id", r.CheckoutID),
			logx.Int("result_code", r.ResultCode),
			logx.String("result_desc", r.ResultDesc),
		)
		return nil
	}
	s.count("confirmed")
	if paidID == 0 {
		// delivery was cancelled while the customer was paying
		s.logger.Warn("payment confirmed for a delivery that is no longer pending",
			logx.String("checkout_id", r.CheckoutID),
		)
		return nil
	}
	s.logger.Info("payment confirmed",
		logx.String("event", "payment_confirmed"),
		logx.Int64("delivery_id", paidID),
		logx.String("checkout_id", r.CheckoutID),
	)
	if s.paid != nil {
		return s.paid.OnPaid(ctx, paidID)
	}
	return nil
}
