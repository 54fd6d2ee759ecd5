package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

type ConversationRepository struct {
	DB *sql.DB
}

// pair orders two participant ids so the unique key covers both directions.
func pair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *ConversationRepository) GetByParticipants(ctx context.Context, a, b int) (models.Conversation, error) {
	one, two := pair(a, b)
	return r.get(ctx, `participant_one_id = ? AND participant_two_id = ?`, one, two)
}

func (r *ConversationRepository) GetByID(ctx context.Context, id int) (models.Conversation, error) {
	return r.get(ctx, `id = ?`, id)
}

func (r *ConversationRepository) get(ctx context.Context, where string, args ...any) (models.Conversation, error) {
	var c models.Conversation
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, participant_one_id, participant_two_id, created_at FROM conversations WHERE `+where, args...).
		Scan(&c.ID, &c.ParticipantOneID, &c.ParticipantTwoID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, models.ErrNoRecord
	}
	return c, err
}

// GetOrCreate returns the conversation between a and b, creating it when
// missing. Concurrent callers converge on the same row.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, a, b int) (models.Conversation, error) {
	one, two := pair(a, b)
	_, err := r.DB.ExecContext(ctx, `
		INSERT IGNORE INTO conversations (participant_one_id, participant_two_id, created_at)
		VALUES (?, ?, NOW(3))`, one, two)
	if err != nil {
		return models.Conversation{}, err
	}
	return r.GetByParticipants(ctx, one, two)
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID int) ([]models.Conversation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, participant_one_id, participant_two_id, created_at
		FROM conversations
		WHERE participant_one_id = ? OR participant_two_id = ?
		ORDER BY created_at DESC, id DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.ParticipantOneID, &c.ParticipantTwoID, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
