package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/ports/deliverytx"
)

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Get returns the delivery with its rider, swap and orders, or nil if absent.
func (r *DeliveryRepo) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, id, false)
}

// ListAvailable returns paid deliveries without a rider, oldest first.
func (r *DeliveryRepo) ListAvailable(ctx context.Context, limit int) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id FROM deliveries
        WHERE status = 'paid' AND rider_id IS NULL
        ORDER BY created_at, id
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list available deliveries: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("list available deliveries: %w", err)
	}

	out := make([]domain.Delivery, 0, len(ids))
	for _, id := range ids {
		d, err := getDelivery(ctx, r.db, id, false)
		if err != nil {
			return nil, err
		}
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

// UpdateLogistics writes both endpoints and the fee in one statement.
// It only applies while the delivery is not locked and reports whether a row changed.
func (r *DeliveryRepo) UpdateLogistics(ctx context.Context, u domain.LogisticsUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET
            pickup_location  = $2,
            dropoff_location = $3,
            transport_cost   = $4,
            updated_at       = now()
        WHERE id = $1
          AND status NOT IN ('shipped', 'delivered', 'cancelled')
    `, u.DeliveryID, u.PickupLocation, u.DropoffLocation, u.TransportCost)
	if err != nil {
		return false, fmt.Errorf("update delivery %d logistics: %w", u.DeliveryID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// TransitionStatus moves the delivery from one status to another if it is still in from.
func (r *DeliveryRepo) TransitionStatus(ctx context.Context, id int64, from, to domain.DeliveryStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("transition delivery %d %s->%s: %w", id, from, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// AssignRider ships a paid delivery with the given rider.
func (r *DeliveryRepo) AssignRider(ctx context.Context, id int64, rider domain.UserID) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = 'shipped', rider_id = $2, updated_at = now()
        WHERE id = $1 AND status = 'paid' AND rider_id IS NULL
    `, id, int64(rider))
	if err != nil {
		return false, fmt.Errorf("assign rider to delivery %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Complete marks a shipped delivery as delivered and clears its position.
func (r *DeliveryRepo) Complete(ctx context.Context, id int64, rider domain.UserID) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = 'delivered', current_lat = NULL, current_lng = NULL, updated_at = now()
        WHERE id = $1 AND status = 'shipped' AND rider_id = $2
    `, id, int64(rider))
	if err != nil {
		return false, fmt.Errorf("complete delivery %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdatePosition stores the rider position while the delivery is shipped.
func (r *DeliveryRepo) UpdatePosition(ctx context.Context, id int64, rider domain.UserID, c domain.Coordinates) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET current_lat = $3, current_lng = $4, updated_at = now()
        WHERE id = $1 AND status = 'shipped' AND rider_id = $2
    `, id, int64(rider), c.Lat, c.Lng)
	if err != nil {
		return false, fmt.Errorf("update delivery %d position: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetDeliveryForUpdate loads and locks a delivery row.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getDelivery(ctx, r.tx, id, true)
}

// InsertDelivery inserts a pending delivery and sets d.ID.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	var swapID *int64
	if d.Swap != nil {
		swapID = &d.Swap.ID
	}
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (status, pickup_location, dropoff_location, swap_id, conversation_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, string(d.Status), d.PickupLocation, d.DropoffLocation, swapID, d.ConversationID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return writeErr("insert delivery", err)
	}
	return nil
}

// OrderBuyers returns the distinct buyers of the given orders.
func (r *TxRepo) OrderBuyers(ctx context.Context, orderIDs []int64) ([]domain.UserID, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT DISTINCT buyer_id FROM orders WHERE id = ANY($1) ORDER BY buyer_id
    `, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("buyers of orders: %w", err)
	}
	buyers, err := pgx.CollectRows(rows, pgx.RowTo[domain.UserID])
	if err != nil {
		return nil, fmt.Errorf("buyers of orders: %w", err)
	}
	return buyers, nil
}

// AttachOrders links orders that have no delivery yet and returns how many were linked.
func (r *TxRepo) AttachOrders(ctx context.Context, deliveryID int64, orderIDs []int64) (int64, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders SET delivery_id = $1
        WHERE id = ANY($2) AND delivery_id IS NULL
    `, deliveryID, orderIDs)
	if err != nil {
		return 0, fmt.Errorf("attach orders to delivery %d: %w", deliveryID, err)
	}
	return ct.RowsAffected(), nil
}

// GetSwapForUpdate loads and locks a swap.
func (r *TxRepo) GetSwapForUpdate(ctx context.Context, id int64) (*domain.Swap, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT s.id, s.sender_id, s.receiver_id, s.status,
               ol.id, ol.title, ol.seller_id, rl.id, rl.title, rl.seller_id
        FROM swaps s
        JOIN listings ol ON ol.id = s.offered_listing_id
        JOIN listings rl ON rl.id = s.requested_listing_id
        WHERE s.id = $1
        FOR UPDATE OF s
    `, id)

	var s domain.Swap
	err := row.Scan(&s.ID, &s.SenderID, &s.ReceiverID, &s.Status,
		&s.OfferedListing.ID, &s.OfferedListing.Title, &s.OfferedListing.SellerID,
		&s.RequestedListing.ID, &s.RequestedListing.Title, &s.RequestedListing.SellerID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get swap %d: %w", id, err)
	}
	return &s, nil
}

// MarkPaid moves a pending delivery to paid and assigns its tracking code.
func (r *TxRepo) MarkPaid(ctx context.Context, deliveryID int64, trackingCode string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status = 'paid', tracking_code = COALESCE(tracking_code, $2), updated_at = now()
        WHERE id = $1 AND status = 'pending'
    `, deliveryID, trackingCode)
	if err != nil {
		return false, fmt.Errorf("mark delivery %d paid: %w", deliveryID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// GetPaymentForUpdate loads and locks a payment attempt by checkout id.
func (r *TxRepo) GetPaymentForUpdate(ctx context.Context, checkoutID string) (*domain.PaymentAttempt, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, delivery_id, checkout_id, phone, amount, status, receipt, created_at, updated_at
        FROM payments
        WHERE checkout_id = $1
        FOR UPDATE
    `, checkoutID)
	p, err := scanPayment(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment %q: %w", checkoutID, err)
	}
	return p, nil
}

// SetPaymentStatus records the final status of a payment attempt.
func (r *TxRepo) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, receipt string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE payments
        SET status = $2, receipt = $3, updated_at = now()
        WHERE id = $1
    `, id, string(status), receipt)
	if err != nil {
		return fmt.Errorf("update payment %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("payment %d not found", id)
	}
	return nil
}

func getDelivery(ctx context.Context, q querier, id int64, forUpdate bool) (*domain.Delivery, error) {
	sql := `
        SELECT d.id, d.tracking_code, d.status, d.pickup_location, d.dropoff_location, d.transport_cost,
               d.current_lat, d.current_lng, d.conversation_id, d.created_at, d.updated_at,
               r.id, r.name, r.phone,
               s.id, s.sender_id, s.receiver_id, s.status,
               ol.id, ol.title, ol.seller_id, rl.id, rl.title, rl.seller_id
        FROM deliveries d
        LEFT JOIN users r ON r.id = d.rider_id
        LEFT JOIN swaps s ON s.id = d.swap_id
        LEFT JOIN listings ol ON ol.id = s.offered_listing_id
        LEFT JOIN listings rl ON rl.id = s.requested_listing_id
        WHERE d.id = $1`
	if forUpdate {
		sql += ` FOR UPDATE OF d`
	}

	var (
		d                      domain.Delivery
		trackingCode           *string
		lat, lng               *float64
		riderID                *int64
		riderName, riderPhone  *string
		swapID                 *int64
		sender, receiver       *int64
		swapStatus             *string
		offeredID, requestedID *int64
		offeredTitle, reqTitle *string
		offeredSeller, reqSell *int64
	)
	err := q.QueryRow(ctx, sql, id).Scan(
		&d.ID, &trackingCode, &d.Status, &d.PickupLocation, &d.DropoffLocation, &d.TransportCost,
		&lat, &lng, &d.ConversationID, &d.CreatedAt, &d.UpdatedAt,
		&riderID, &riderName, &riderPhone,
		&swapID, &sender, &receiver, &swapStatus,
		&offeredID, &offeredTitle, &offeredSeller, &requestedID, &reqTitle, &reqSell,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}

	if trackingCode != nil {
		d.TrackingCode = *trackingCode
	}
	if lat != nil && lng != nil {
		d.Position = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	if riderID != nil {
		d.Rider = &domain.Rider{ID: domain.UserID(*riderID), Name: deref(riderName), Phone: deref(riderPhone)}
	}
	if swapID != nil {
		d.Swap = &domain.Swap{
			ID:         *swapID,
			SenderID:   domain.UserID(derefInt(sender)),
			ReceiverID: domain.UserID(derefInt(receiver)),
			Status:     domain.SwapStatus(deref(swapStatus)),
			OfferedListing: domain.Listing{
				ID: derefInt(offeredID), Title: deref(offeredTitle), SellerID: domain.UserID(derefInt(offeredSeller)),
			},
			RequestedListing: domain.Listing{
				ID: derefInt(requestedID), Title: deref(reqTitle), SellerID: domain.UserID(derefInt(reqSell)),
			},
		}
		return &d, nil
	}

	orders, err := listOrders(ctx, q, d.ID)
	if err != nil {
		return nil, err
	}
	d.Orders = orders
	return &d, nil
}

func listOrders(ctx context.Context, q querier, deliveryID int64) ([]domain.Order, error) {
	rows, err := q.Query(ctx, `
        SELECT o.id, o.buyer_id, o.amount_paid, l.id, l.title, l.seller_id
        FROM orders o
        JOIN listings l ON l.id = o.listing_id
        WHERE o.delivery_id = $1
        ORDER BY o.id
    `, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list orders of delivery %d: %w", deliveryID, err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.AmountPaid, &o.Listing.ID, &o.Listing.Title, &o.Listing.SellerID); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.PaymentAttempt, error) {
	var p domain.PaymentAttempt
	err := row.Scan(&p.ID, &p.DeliveryID, &p.CheckoutID, &p.Phone, &p.Amount, &p.Status, &p.Receipt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
