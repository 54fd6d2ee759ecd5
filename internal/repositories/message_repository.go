package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, m models.Message) (models.Message, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO messages (conversation_id, user_id, text, seen, created_at)
		VALUES (?, ?, ?, FALSE, NOW(3))`, m.ConversationID, m.UserID, m.Text)
	if err != nil {
		return models.Message{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}
	return r.getByID(ctx, int(id))
}

func (r *MessageRepository) getByID(ctx context.Context, id int) (models.Message, error) {
	var m models.Message
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, conversation_id, user_id, text, seen, created_at FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Text, &m.Seen, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, models.ErrNoRecord
	}
	return m, err
}

// ListWithUsers returns a conversation's messages oldest first, each joined
// with its author.
func (r *MessageRepository) ListWithUsers(ctx context.Context, conversationID int) ([]models.MessageWithUser, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.conversation_id, m.user_id, m.text, m.seen, m.created_at, `+userColumns+`
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.conversation_id = ?
		ORDER BY m.created_at, m.id`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.MessageWithUser{}
	for rows.Next() {
		var mw models.MessageWithUser
		var image sql.NullString
		err := rows.Scan(&mw.Message.ID, &mw.Message.ConversationID, &mw.Message.UserID, &mw.Message.Text,
			&mw.Message.Seen, &mw.Message.CreatedAt,
			&mw.User.ID, &mw.User.TokenIdentifier, &mw.User.Username, &mw.User.FullName, &mw.User.Title,
			&mw.User.Description, &mw.User.CustomTag, &image, &mw.User.Country, &mw.User.CreatedAt)
		if err != nil {
			return nil, err
		}
		if image.Valid && image.String != "" {
			mw.User.ProfileImageURL = &image.String
		}
		messages = append(messages, mw)
	}
	return messages, rows.Err()
}

// LastMessage returns the newest message of a conversation, or nil.
func (r *MessageRepository) LastMessage(ctx context.Context, conversationID int) (*models.Message, error) {
	var m models.Message
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, conversation_id, user_id, text, seen, created_at
		FROM messages WHERE conversation_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, conversationID).
		Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Text, &m.Seen, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
