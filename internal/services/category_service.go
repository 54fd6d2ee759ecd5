package services

import (
	"context"

	"skillsyncBack/internal/models"
)

// Cache is satisfied by *cache.JSONCache.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

type CategoryService struct {
	Categories CategoryStore
	Cache      Cache
	Logger     Logger
}

const categoriesCacheKey = "all"

// List returns the fixed taxonomy, read through the cache when one is set.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	if s.Cache != nil {
		var cached []models.Category
		found, err := s.Cache.Get(ctx, categoriesCacheKey, &cached)
		if err != nil {
			logOrNop(s.Logger).Errorf("categories cache get: %v", err)
		} else if found {
			return cached, nil
		}
	}

	categories, err := s.Categories.GetCategoriesWithSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, categoriesCacheKey, categories); err != nil {
			logOrNop(s.Logger).Errorf("categories cache set: %v", err)
		}
	}
	return categories, nil
}
