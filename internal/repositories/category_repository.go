package repositories

import (
	"context"
	"database/sql"
	"errors"

	"skillsyncBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

// GetCategoriesWithSubcategories loads the whole taxonomy in two queries.
func (r *CategoryRepository) GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	index := map[int]int{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		c.Subcategories = []models.Subcategory{}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subs, err := r.ListSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		if i, ok := index[s.CategoryID]; ok {
			categories[i].Subcategories = append(categories[i].Subcategories, s)
		}
	}
	return categories, nil
}

func (r *CategoryRepository) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, category_id, name FROM subcategories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subcategory
	for rows.Next() {
		var s models.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *CategoryRepository) GetSubcategoryByName(ctx context.Context, name string) (models.Subcategory, error) {
	return r.getSubcategory(ctx, `name = ?`, name)
}

func (r *CategoryRepository) GetSubcategoryByID(ctx context.Context, id int) (models.Subcategory, error) {
	return r.getSubcategory(ctx, `id = ?`, id)
}

func (r *CategoryRepository) getSubcategory(ctx context.Context, where string, arg any) (models.Subcategory, error) {
	var s models.Subcategory
	err := r.DB.QueryRowContext(ctx, `SELECT id, category_id, name FROM subcategories WHERE `+where, arg).
		Scan(&s.ID, &s.CategoryID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subcategory{}, models.ErrNoRecord
	}
	return s, err
}
