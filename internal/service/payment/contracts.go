//go:generate mockgen -source=contracts.go -destination=payment_mocks_test.go -package=payment_test

package payment

import (
	"context"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/ports/deliverytx"
)

// Gateway hands a payment request to the external collaborator.
type Gateway interface {
	STKPush(ctx context.Context, req domain.PaymentRequest) (domain.PaymentInitiation, error)
}

type deliveryReader interface {
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

type attemptStore interface {
	Insert(ctx context.Context, p *domain.PaymentAttempt) error
}

// PaidHook runs the side effects of a delivery becoming paid.
type PaidHook interface {
	OnPaid(ctx context.Context, deliveryID int64) error
}

// ResultHandler applies payment results.
type ResultHandler interface {
	HandleResult(ctx context.Context, r domain.PaymentResult) error
}
