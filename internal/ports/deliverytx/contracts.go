package deliverytx

import (
	"context"

	"textbook-logistics/internal/domain"
)

// Repository is the set of writes that must happen atomically.
type Repository interface {
	GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	OrderBuyers(ctx context.Context, orderIDs []int64) ([]domain.UserID, error)
	AttachOrders(ctx context.Context, deliveryID int64, orderIDs []int64) (int64, error)
	GetSwapForUpdate(ctx context.Context, id int64) (*domain.Swap, error)
	MarkPaid(ctx context.Context, deliveryID int64, trackingCode string) (bool, error)
	GetPaymentForUpdate(ctx context.Context, checkoutID string) (*domain.PaymentAttempt, error)
	SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, receipt string) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
