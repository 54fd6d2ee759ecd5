package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

type MediaRepository struct {
	DB *sql.DB
}

func (r *MediaRepository) CreateMedia(ctx context.Context, m models.Media) (models.Media, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO gig_media (gig_id, storage_id, format, created_at) VALUES (?, ?, ?, NOW(3))`,
		m.GigID, m.StorageID, m.Format)
	if err != nil {
		return models.Media{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Media{}, err
	}
	m.ID = int(id)
	return m, nil
}

// FirstByGig returns the earliest media record of a gig, or nil.
func (r *MediaRepository) FirstByGig(ctx context.Context, gigID int) (*models.Media, error) {
	var m models.Media
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, gig_id, storage_id, format, created_at FROM gig_media WHERE gig_id = ? ORDER BY id LIMIT 1`, gigID).
		Scan(&m.ID, &m.GigID, &m.StorageID, &m.Format, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) ListByGig(ctx context.Context, gigID int) ([]models.Media, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, gig_id, storage_id, format, created_at FROM gig_media WHERE gig_id = ? ORDER BY id`, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.GigID, &m.StorageID, &m.Format, &m.CreatedAt); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
