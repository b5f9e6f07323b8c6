package tracking

import (
	"context"

	"textbook-logistics/internal/domain"
)

//go:generate mockgen -source=contracts.go -destination=tracking_mocks_test.go -package=tracking

// Backend is the authoritative delivery API a session talks to.
type Backend interface {
	FetchDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateDelivery(ctx context.Context, id int64, p domain.DeliveryPatch) (*domain.Delivery, error)
	CancelDelivery(ctx context.Context, id int64) error
	ComputeFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error)
	InitiatePayment(ctx context.Context, id int64, phone string) (domain.PaymentInitiation, error)
	PushRiderPosition(ctx context.Context, id int64, c domain.Coordinates) error
	DialLive(ctx context.Context, id int64, rider bool) (LiveConn, error)
}

// LiveConn is an open live channel for one delivery.
type LiveConn interface {
	// Read blocks until the next fragment arrives or the channel fails.
	Read() (domain.Fragment, error)
	// Send pushes a rider sample. It does not wait for any acknowledgement.
	Send(c domain.Coordinates) error
	Close() error
}

// WatchOptions configures a location watch.
type WatchOptions struct {
	HighAccuracy bool
}

// LocationProvider streams device positions as fast as the device produces them.
// The channel is closed when ctx is done or the provider stops.
type LocationProvider interface {
	Watch(ctx context.Context, opts WatchOptions) (<-chan domain.Coordinates, error)
}
