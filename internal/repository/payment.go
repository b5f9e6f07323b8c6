package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"textbook-logistics/internal/domain"
)

// PaymentRepo stores payment attempts.
type PaymentRepo struct{ db *pgxpool.Pool }

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo { return &PaymentRepo{db: db} }

// Insert records an initiated payment attempt.
func (r *PaymentRepo) Insert(ctx context.Context, p *domain.PaymentAttempt) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO payments (delivery_id, checkout_id, phone, amount, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, p.DeliveryID, p.CheckoutID, p.Phone, p.Amount, string(p.Status),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return writeErr(fmt.Sprintf("insert payment for delivery %d", p.DeliveryID), err)
	}
	return nil
}

// ListByDelivery returns payment attempts of a delivery, newest first.
func (r *PaymentRepo) ListByDelivery(ctx context.Context, deliveryID int64) ([]domain.PaymentAttempt, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, delivery_id, checkout_id, phone, amount, status, receipt, created_at, updated_at
        FROM payments
        WHERE delivery_id = $1
        ORDER BY id DESC
    `, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list payments of delivery %d: %w", deliveryID, err)
	}
	defer rows.Close()

	var out []domain.PaymentAttempt
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
