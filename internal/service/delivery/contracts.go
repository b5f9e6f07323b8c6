//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/ports/deliverytx"
)

type deliveryRepository interface {
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	ListAvailable(ctx context.Context, limit int) ([]domain.Delivery, error)
	UpdateLogistics(ctx context.Context, u domain.LogisticsUpdate) (bool, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.DeliveryStatus) (bool, error)
	AssignRider(ctx context.Context, id int64, rider domain.UserID) (bool, error)
	Complete(ctx context.Context, id int64, rider domain.UserID) (bool, error)
	UpdatePosition(ctx context.Context, id int64, rider domain.UserID, c domain.Coordinates) (bool, error)
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

type feeCalculator interface {
	ComputeFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error)
}

// Publisher fans a fragment out to the live channel of a delivery.
type Publisher interface {
	Publish(ctx context.Context, deliveryID int64, f domain.Fragment) error
}

// RiderNotifier tells riders that a job is waiting.
type RiderNotifier interface {
	NotifyJobAvailable(ctx context.Context, d *domain.Delivery) error
}
