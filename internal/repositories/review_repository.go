package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"skillsyncBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	query := `
		INSERT INTO reviews (gig_id, author_id, seller_id, communication_level, recommend_to_a_friend,
			service_as_described, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(3))`
	result, err := r.DB.ExecContext(ctx, query, rev.GigID, rev.AuthorID, rev.SellerID,
		rev.CommunicationLevel, rev.RecommendToAFriend, rev.ServiceAsDescribed, rev.Content)
	if err != nil {
		if isDuplicateKeyError(err) {
			return models.Review{}, models.ErrAlreadyReviewed
		}
		return models.Review{}, fmt.Errorf("insert review: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)
	return rev, nil
}

// ListByGig returns a gig's reviews with their authors, newest first.
func (r *ReviewRepository) ListByGig(ctx context.Context, gigID int) ([]models.Review, error) {
	return r.list(ctx, `rv.gig_id = ?`, gigID)
}

// ListBySeller returns reviews left on any of the seller's gigs.
func (r *ReviewRepository) ListBySeller(ctx context.Context, sellerID int) ([]models.Review, error) {
	return r.list(ctx, `rv.seller_id = ?`, sellerID)
}

func (r *ReviewRepository) list(ctx context.Context, where string, arg any) ([]models.Review, error) {
	query := `
		SELECT rv.id, rv.gig_id, rv.author_id, rv.seller_id, rv.communication_level,
			rv.recommend_to_a_friend, rv.service_as_described, COALESCE(rv.content, ''), rv.created_at,
			` + userColumns + `
		FROM reviews rv
		JOIN users u ON u.id = rv.author_id
		WHERE ` + where + `
		ORDER BY rv.created_at DESC, rv.id DESC`
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		var author models.User
		var image sql.NullString
		err := rows.Scan(&rev.ID, &rev.GigID, &rev.AuthorID, &rev.SellerID, &rev.CommunicationLevel,
			&rev.RecommendToAFriend, &rev.ServiceAsDescribed, &rev.Content, &rev.CreatedAt,
			&author.ID, &author.TokenIdentifier, &author.Username, &author.FullName, &author.Title,
			&author.Description, &author.CustomTag, &image, &author.Country, &author.CreatedAt)
		if err != nil {
			return nil, err
		}
		if image.Valid && image.String != "" {
			author.ProfileImageURL = &image.String
		}
		rev.Author = &author
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
