package repositories

import (
	"context"
	"database/sql"

	"skillsyncBack/internal/models"
)

type OrderRepository struct {
	DB *sql.DB
}

// CreateOrder inserts an order. A repeated Stripe session id is ignored so
// webhook redeliveries stay idempotent; created reports whether a row was
// written.
func (r *OrderRepository) CreateOrder(ctx context.Context, o models.Order) (created bool, err error) {
	query := `
		INSERT IGNORE INTO orders (gig_id, offer_id, buyer_id, seller_id, amount, status, stripe_session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(3))`
	result, err := r.DB.ExecContext(ctx, query, o.GigID, o.OfferID, o.BuyerID, o.SellerID, o.Amount, o.Status, o.StripeSessionID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepository) ListByGig(ctx context.Context, gigID int) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, gig_id, offer_id, buyer_id, seller_id, amount, status, stripe_session_id, created_at
		FROM orders WHERE gig_id = ? ORDER BY id`, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.GigID, &o.OfferID, &o.BuyerID, &o.SellerID, &o.Amount, &o.Status,
			&o.StripeSessionID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
