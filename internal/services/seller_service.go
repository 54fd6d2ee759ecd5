package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"skillsyncBack/internal/models"
)

type SellerService struct {
	Users   UserStore
	Gigs    GigStore
	Offers  OfferStore
	Orders  OrderStore
	Media   MediaStore
	Reviews ReviewStore
	Storage URLSigner
	Logger  Logger
	FanOut  int
}

// GigStats returns the caller's gigs, newest first, with order count,
// list-price revenue, paid revenue and the first image URL.
func (s *SellerService) GigStats(ctx context.Context, identity *models.Identity) ([]models.GigStats, error) {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return nil, err
	}
	gigs, err := s.Gigs.ListBySeller(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list seller gigs: %w", err)
	}

	var mu sync.Mutex
	stats := make(map[int]models.GigStats, len(gigs))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.FanOut
	if limit <= 0 {
		limit = defaultFanOut
	}
	g.SetLimit(limit)
	for _, gig := range gigs {
		g.Go(func() error {
			st, err := s.gigStats(gctx, gig)
			if err != nil {
				return err
			}
			mu.Lock()
			stats[gig.ID] = st
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.GigStats, 0, len(gigs))
	for _, gig := range gigs {
		out = append(out, stats[gig.ID])
	}
	return out, nil
}

func (s *SellerService) gigStats(ctx context.Context, gig models.Gig) (models.GigStats, error) {
	st := models.GigStats{Gig: gig}

	orders, err := s.Orders.ListByGig(ctx, gig.ID)
	if err != nil {
		return st, fmt.Errorf("gig %d orders: %w", gig.ID, err)
	}
	st.OrderAmount = len(orders)
	for _, o := range orders {
		if o.Status == models.OrderStatusPaid {
			st.PaidRevenue += o.Amount
		}
	}

	offers, err := s.Offers.ListByGig(ctx, gig.ID)
	if err != nil {
		return st, fmt.Errorf("gig %d offers: %w", gig.ID, err)
	}
	for _, o := range offers {
		st.TotalRevenue += o.Price
	}

	media, err := s.Media.FirstByGig(ctx, gig.ID)
	if err != nil {
		return st, fmt.Errorf("gig %d media: %w", gig.ID, err)
	}
	if media != nil && s.Storage != nil {
		url, err := s.Storage.PresignGet(media.StorageID)
		if err != nil {
			logOrNop(s.Logger).Errorf("presign %s: %v", media.StorageID, err)
		} else {
			st.ImageURL = &url
		}
	}
	return st, nil
}

// GigsBySellerName returns every gig of the named seller, or nil when no
// such user exists.
func (s *SellerService) GigsBySellerName(ctx context.Context, username string) ([]models.Gig, error) {
	seller, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Gigs.ListBySeller(ctx, seller.ID)
}

// GigsWithImages returns the seller's gigs with every image resolved to a
// URL. Any image that cannot be resolved fails the whole call.
func (s *SellerService) GigsWithImages(ctx context.Context, username string) ([]models.GigWithImages, error) {
	seller, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNoRecord) {
		return nil, models.ErrSellerNotFound
	}
	if err != nil {
		return nil, err
	}
	gigs, err := s.Gigs.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	out := make([]models.GigWithImages, len(gigs))
	g, gctx := errgroup.WithContext(ctx)
	for i, gig := range gigs {
		g.Go(func() error {
			images, err := s.Media.ListByGig(gctx, gig.ID)
			if err != nil {
				return err
			}
			for j := range images {
				if s.Storage == nil {
					return models.ErrImageNotFound
				}
				url, err := s.Storage.PresignGet(images[j].StorageID)
				if err != nil || url == "" {
					return models.ErrImageNotFound
				}
				images[j].URL = url
			}
			out[i] = models.GigWithImages{Gig: gig, Images: images}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile assembles the seller profile card.
func (s *SellerService) Profile(ctx context.Context, username string) (models.SellerProfile, error) {
	seller, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNoRecord) {
		return models.SellerProfile{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.SellerProfile{}, err
	}
	profile := models.SellerProfile{Seller: seller, Country: seller.Country}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		langs, err := s.Users.GetLanguages(gctx, seller.ID)
		profile.Languages = langs
		return err
	})
	g.Go(func() error {
		reviews, err := s.Reviews.ListBySeller(gctx, seller.ID)
		profile.Reviews = reviews
		return err
	})
	if err := g.Wait(); err != nil {
		return models.SellerProfile{}, err
	}
	profile.AvgRating = AverageRating(profile.Reviews)
	profile.ReviewCount = len(profile.Reviews)
	return profile, nil
}
