package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

const offerColumns = `id, gig_id, tier, title, COALESCE(description, ''), price, delivery_days, revisions, stripe_price_id`

type OfferRepository struct {
	DB *sql.DB
}

func scanOffer(row rowScanner) (models.Offer, error) {
	var o models.Offer
	err := row.Scan(&o.ID, &o.GigID, &o.Tier, &o.Title, &o.Description, &o.Price, &o.DeliveryDays, &o.Revisions, &o.StripePriceID)
	return o, err
}

func (r *OfferRepository) CreateOffer(ctx context.Context, o models.Offer) (models.Offer, error) {
	query := `
		INSERT INTO offers (gig_id, tier, title, description, price, delivery_days, revisions, stripe_price_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.DB.ExecContext(ctx, query, o.GigID, o.Tier, o.Title, o.Description, o.Price, o.DeliveryDays, o.Revisions, o.StripePriceID)
	if err != nil {
		return models.Offer{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Offer{}, err
	}
	o.ID = int(id)
	return o, nil
}

func (r *OfferRepository) GetOfferByID(ctx context.Context, id int) (models.Offer, error) {
	o, err := scanOffer(r.DB.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Offer{}, models.ErrNoRecord
	}
	return o, err
}

// FirstByGig returns the earliest offer of a gig, or nil when it has none.
func (r *OfferRepository) FirstByGig(ctx context.Context, gigID int) (*models.Offer, error) {
	o, err := scanOffer(r.DB.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE gig_id = ? ORDER BY id LIMIT 1`, gigID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) ListByGig(ctx context.Context, gigID int) ([]models.Offer, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE gig_id = ? ORDER BY id`, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
