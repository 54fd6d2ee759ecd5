package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

const gigColumns = `g.id, g.title, COALESCE(g.description, ''), g.seller_id, g.subcategory_id, g.published, g.created_at`

type GigRepository struct {
	DB *sql.DB
}

func scanGig(row rowScanner) (models.Gig, error) {
	var g models.Gig
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.SellerID, &g.SubcategoryID, &g.Published, &g.CreatedAt)
	return g, err
}

func (r *GigRepository) list(ctx context.Context, query string, args ...any) ([]models.Gig, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := []models.Gig{}
	for rows.Next() {
		g, err := scanGig(rows)
		if err != nil {
			return nil, err
		}
		gigs = append(gigs, g)
	}
	return gigs, rows.Err()
}

func (r *GigRepository) CreateGig(ctx context.Context, g models.Gig) (models.Gig, error) {
	query := `
		INSERT INTO gigs (seller_id, subcategory_id, title, description, published, created_at)
		VALUES (?, ?, ?, ?, ?, NOW(3))`
	result, err := r.DB.ExecContext(ctx, query, g.SellerID, g.SubcategoryID, g.Title, g.Description, g.Published)
	if err != nil {
		return models.Gig{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Gig{}, err
	}
	return r.GetGigByID(ctx, int(id))
}

func (r *GigRepository) GetGigByID(ctx context.Context, id int) (models.Gig, error) {
	g, err := scanGig(r.DB.QueryRowContext(ctx, `SELECT `+gigColumns+` FROM gigs g WHERE g.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Gig{}, models.ErrNoRecord
	}
	return g, err
}

// ListPublished returns published gigs, newest first.
func (r *GigRepository) ListPublished(ctx context.Context) ([]models.Gig, error) {
	return r.list(ctx, `SELECT `+gigColumns+` FROM gigs g WHERE g.published = TRUE ORDER BY g.created_at DESC, g.id DESC`)
}

// SearchPublished runs a full-text title search over published gigs, best
// match first.
func (r *GigRepository) SearchPublished(ctx context.Context, text string) ([]models.Gig, error) {
	query := `
		SELECT ` + gigColumns + `
		FROM gigs g
		WHERE g.published = TRUE AND MATCH(g.title) AGAINST (? IN NATURAL LANGUAGE MODE)
		ORDER BY MATCH(g.title) AGAINST (? IN NATURAL LANGUAGE MODE) DESC, g.id DESC`
	return r.list(ctx, query, text, text)
}

// ListBySeller returns all of a seller's gigs, drafts included, newest first.
func (r *GigRepository) ListBySeller(ctx context.Context, sellerID int) ([]models.Gig, error) {
	return r.list(ctx, `SELECT `+gigColumns+` FROM gigs g WHERE g.seller_id = ? ORDER BY g.created_at DESC, g.id DESC`, sellerID)
}

func (r *GigRepository) SetPublished(ctx context.Context, id int, published bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE gigs SET published = ? WHERE id = ?`, published, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 when the value is unchanged, so confirm existence.
		if _, err := r.GetGigByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
