package tracking

import (
	"context"
	"errors"
	"sync"

	"textbook-logistics/internal/domain"
)

const (
	proposer domain.UserID = 1
	partner  domain.UserID = 2
	buyer    domain.UserID = 3
	seller   domain.UserID = 4
	riderID  domain.UserID = 9
)

func saleDelivery(status domain.DeliveryStatus) *domain.Delivery {
	return &domain.Delivery{
		ID:              7,
		Status:          status,
		PickupLocation:  "Nyeri Town",
		DropoffLocation: "Karatina",
		TransportCost:   200,
		Orders: []domain.Order{{
			ID:         1,
			BuyerID:    buyer,
			Listing:    domain.Listing{ID: 4, Title: "KLB Mathematics F3", SellerID: seller},
			AmountPaid: 800,
		}},
	}
}

func swapDelivery(status domain.DeliveryStatus) *domain.Delivery {
	return &domain.Delivery{
		ID:              7,
		Status:          status,
		PickupLocation:  "Nyeri Town",
		DropoffLocation: "Othaya",
		TransportCost:   300,
		Swap: &domain.Swap{
			ID:         3,
			SenderID:   proposer,
			ReceiverID: partner,
			Status:     domain.SwapAccepted,
		},
	}
}

func withRider(d *domain.Delivery, lat, lng float64) *domain.Delivery {
	d.Rider = &domain.Rider{ID: riderID, Name: "Wanjiru", Phone: "254712345678"}
	d.Position = &domain.Coordinates{Lat: lat, Lng: lng}
	return d
}

func quoteFor(pickup, dropoff string, isSwap bool) domain.FeeQuote {
	fee := int64(250)
	if isSwap {
		fee = 450
	}
	return domain.FeeQuote{
		Fee:           fee,
		DistanceKm:    40.1,
		PickupCoords:  domain.Coordinates{Lat: -0.42, Lng: 36.95},
		DropoffCoords: domain.Coordinates{Lat: -0.48, Lng: 37.13},
		Route:         &domain.Route{Geometry: []domain.Coordinates{{Lat: -0.42, Lng: 36.95}, {Lat: -0.48, Lng: 37.13}}},
	}
}

// fakeBackend serves a mutable delivery and counts calls.
type fakeBackend struct {
	mu       sync.Mutex
	delivery *domain.Delivery
	fetchErr error
	feeErr   error
	dialErr  error
	conn     *fakeConn

	fetches int
	fees    int
	dials   []bool
	pushed  []domain.Coordinates
}

func (b *fakeBackend) set(d *domain.Delivery) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delivery = d
}

func (b *fakeBackend) counts() (fetches, fees, dials int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches, b.fees, len(b.dials)
}

func (b *fakeBackend) FetchDelivery(context.Context, int64) (*domain.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return b.delivery.Clone(), nil
}

func (b *fakeBackend) UpdateDelivery(context.Context, int64, domain.DeliveryPatch) (*domain.Delivery, error) {
	return nil, errors.New("not supported by fakeBackend")
}

func (b *fakeBackend) CancelDelivery(context.Context, int64) error {
	return errors.New("not supported by fakeBackend")
}

func (b *fakeBackend) ComputeFee(_ context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fees++
	if b.feeErr != nil {
		return domain.FeeQuote{}, b.feeErr
	}
	return quoteFor(pickup, dropoff, isSwap), nil
}

func (b *fakeBackend) InitiatePayment(context.Context, int64, string) (domain.PaymentInitiation, error) {
	return domain.PaymentInitiation{}, errors.New("not supported by fakeBackend")
}

func (b *fakeBackend) PushRiderPosition(_ context.Context, _ int64, c domain.Coordinates) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushed = append(b.pushed, c)
	return nil
}

func (b *fakeBackend) DialLive(_ context.Context, _ int64, rider bool) (LiveConn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dials = append(b.dials, rider)
	if b.dialErr != nil {
		return nil, b.dialErr
	}
	if b.conn == nil {
		b.conn = newFakeConn()
	}
	return b.conn, nil
}

// fakeConn is a live channel fed from the test.
type fakeConn struct {
	frames  chan domain.Fragment
	readErr chan error
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	sent   []domain.Coordinates
	closes int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		frames:  make(chan domain.Fragment, 8),
		readErr: make(chan error, 1),
		done:    make(chan struct{}),
	}
}

func (c *fakeConn) Read() (domain.Fragment, error) {
	select {
	case f := <-c.frames:
		return f, nil
	case err := <-c.readErr:
		return domain.Fragment{}, err
	case <-c.done:
		return domain.Fragment{}, errors.New("use of closed network connection")
	}
}

func (c *fakeConn) Send(p domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, p)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *fakeConn) closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes > 0
}

func (c *fakeConn) sentSamples() []domain.Coordinates {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Coordinates(nil), c.sent...)
}

// fakeLocations hands the test a channel to feed samples into.
type fakeLocations struct {
	ch   chan domain.Coordinates
	opts WatchOptions
	ctx  context.Context
	mu   sync.Mutex
}

func (l *fakeLocations) Watch(ctx context.Context, opts WatchOptions) (<-chan domain.Coordinates, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opts = opts
	l.ctx = ctx
	return l.ch, nil
}

func (l *fakeLocations) watchCtx() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx
}
