package services

import (
	"context"
	"errors"

	"skillsyncBack/internal/models"
)

type FavoriteService struct {
	Users     UserStore
	Gigs      GigStore
	Favorites FavoriteStore
}

func (s *FavoriteService) resolve(ctx context.Context, identity *models.Identity, gigID int) (models.User, error) {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.User{}, err
	}
	if _, err := s.Gigs.GetGigByID(ctx, gigID); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.User{}, models.ErrGigNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Add favorites a gig; ErrAlreadyFavorited if it already is.
func (s *FavoriteService) Add(ctx context.Context, identity *models.Identity, gigID int) (models.Favorite, error) {
	user, err := s.resolve(ctx, identity, gigID)
	if err != nil {
		return models.Favorite{}, err
	}
	return s.Favorites.AddFavorite(ctx, user.ID, gigID)
}

// Remove unfavorites a gig; ErrNotFavorited if it was not favorited.
func (s *FavoriteService) Remove(ctx context.Context, identity *models.Identity, gigID int) error {
	user, err := s.resolve(ctx, identity, gigID)
	if err != nil {
		return err
	}
	return s.Favorites.RemoveFavorite(ctx, user.ID, gigID)
}
