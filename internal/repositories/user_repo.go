package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillsyncBack/internal/models"
)

const userColumns = `u.id, u.token_identifier, u.username, u.full_name, u.title,
	COALESCE(u.description, ''), u.custom_tag, u.profile_image_url, u.country, u.created_at`

type UserRepository struct {
	DB *sql.DB
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var image sql.NullString
	err := row.Scan(&u.ID, &u.TokenIdentifier, &u.Username, &u.FullName, &u.Title,
		&u.Description, &u.CustomTag, &image, &u.Country, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	if image.Valid && image.String != "" {
		u.ProfileImageURL = &image.String
	}
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNoRecord
	}
	return u, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	return r.getOne(ctx, `u.id = ?`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, `u.username = ?`, username)
}

func (r *UserRepository) GetByToken(ctx context.Context, tokenIdentifier string) (models.User, error) {
	return r.getOne(ctx, `u.token_identifier = ?`, tokenIdentifier)
}

// GetByIDs returns the users that exist among ids, keyed by id.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int) (map[int]models.User, error) {
	users := make(map[int]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.DB.QueryContext(ctx, query, intArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users u`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Upsert creates the user for a token identifier or refreshes the profile
// fields the identity provider owns.
func (r *UserRepository) Upsert(ctx context.Context, u models.User) (models.User, error) {
	query := `
		INSERT INTO users (token_identifier, username, full_name, profile_image_url)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE full_name = VALUES(full_name), profile_image_url = VALUES(profile_image_url)`
	_, err := r.DB.ExecContext(ctx, query, u.TokenIdentifier, u.Username, u.FullName, u.ProfileImageURL)
	if err != nil {
		if isDuplicateKeyError(err) {
			return models.User{}, models.ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return r.GetByToken(ctx, u.TokenIdentifier)
}

func (r *UserRepository) GetLanguages(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT language FROM user_languages WHERE user_id = ? ORDER BY language`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	languages := []string{}
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, err
		}
		languages = append(languages, lang)
	}
	return languages, rows.Err()
}

func (r *UserRepository) GetSkills(ctx context.Context, userID int) ([]models.Skill, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, user_id, skill FROM skills WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Skill); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
