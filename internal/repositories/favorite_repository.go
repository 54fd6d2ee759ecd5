package repositories

import (
	"context"
	"database/sql"

	"skillsyncBack/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, gigID int) (models.Favorite, error) {
	result, err := r.DB.ExecContext(ctx, `INSERT INTO user_favorites (user_id, gig_id) VALUES (?, ?)`, userID, gigID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return models.Favorite{}, models.ErrAlreadyFavorited
		}
		return models.Favorite{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Favorite{}, err
	}
	return models.Favorite{ID: int(id), UserID: userID, GigID: gigID}, nil
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, gigID int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM user_favorites WHERE user_id = ? AND gig_id = ?`, userID, gigID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFavorited
	}
	return nil
}

func (r *FavoriteRepository) IsFavorited(ctx context.Context, userID, gigID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id = ? AND gig_id = ?)`, userID, gigID).Scan(&exists)
	return exists, err
}

// FavoritedAmong returns the subset of gigIDs the user has favorited.
func (r *FavoriteRepository) FavoritedAmong(ctx context.Context, userID int, gigIDs []int) (map[int]bool, error) {
	favorited := make(map[int]bool)
	if len(gigIDs) == 0 {
		return favorited, nil
	}
	query := `SELECT gig_id FROM user_favorites WHERE user_id = ? AND gig_id IN (` + placeholders(len(gigIDs)) + `)`
	args := append([]any{userID}, intArgs(gigIDs)...)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var gigID int
		if err := rows.Scan(&gigID); err != nil {
			return nil, err
		}
		favorited[gigID] = true
	}
	return favorited, rows.Err()
}
