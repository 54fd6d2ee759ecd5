package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"skillsyncBack/internal/models"
	"skillsyncBack/internal/storage"
)

// PriceCreator registers an offer's list price with the payments provider.
type PriceCreator interface {
	CreatePrice(ctx context.Context, productName string, amount float64) (string, error)
}

type GigService struct {
	Gigs       GigStore
	Users      UserStore
	Offers     OfferStore
	Reviews    ReviewStore
	Favorites  FavoriteStore
	Media      MediaStore
	Categories CategoryStore
	Storage    ObjectUploader
	Prices     PriceCreator
	Logger     Logger
	// FanOut bounds concurrent per-gig lookups; 0 means the default.
	FanOut int
}

func (s *GigService) fanOut() int {
	if s.FanOut > 0 {
		return s.FanOut
	}
	return defaultFanOut
}

// ListGigs assembles listing cards for published gigs. Search switches to a
// full-text title search; Filter narrows to a subcategory by name. Favorites
// is not applied here: callers filter on the favorited flag.
func (s *GigService) ListGigs(ctx context.Context, identity *models.Identity, params models.GigListParams) ([]models.FullGig, error) {
	var gigs []models.Gig
	var err error
	search := strings.TrimSpace(params.Search)
	if search != "" {
		gigs, err = s.Gigs.SearchPublished(ctx, search)
	} else {
		gigs, err = s.Gigs.ListPublished(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list gigs: %w", err)
	}
	gigs = publishedOnly(gigs)
	if search == "" {
		sortNewestFirst(gigs)
	}

	if filter := strings.TrimSpace(params.Filter); filter != "" {
		sub, err := s.Categories.GetSubcategoryByName(ctx, filter)
		if errors.Is(err, models.ErrNoRecord) {
			return []models.FullGig{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve subcategory: %w", err)
		}
		filtered := gigs[:0]
		for _, g := range gigs {
			if g.SubcategoryID == sub.ID {
				filtered = append(filtered, g)
			}
		}
		gigs = filtered
	}
	if len(gigs) == 0 {
		return []models.FullGig{}, nil
	}

	favorited := map[int]bool{}
	user, err := currentUser(ctx, s.Users, identity)
	if err != nil {
		return nil, err
	}
	if user != nil {
		ids := make([]int, len(gigs))
		for i, g := range gigs {
			ids[i] = g.ID
		}
		favorited, err = s.Favorites.FavoritedAmong(ctx, user.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("favorites: %w", err)
		}
	}

	var mu sync.Mutex
	cards := make(map[int]models.FullGig, len(gigs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut())
	for _, gig := range gigs {
		g.Go(func() error {
			card, err := s.assembleCard(gctx, gig)
			if err != nil {
				return err
			}
			card.Favorited = favorited[gig.ID]
			mu.Lock()
			cards[gig.ID] = card
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.FullGig, 0, len(gigs))
	for _, gig := range gigs {
		out = append(out, cards[gig.ID])
	}
	return out, nil
}

func (s *GigService) assembleCard(ctx context.Context, gig models.Gig) (models.FullGig, error) {
	card := models.FullGig{Gig: gig}

	media, err := s.Media.FirstByGig(ctx, gig.ID)
	if err != nil {
		return card, fmt.Errorf("gig %d media: %w", gig.ID, err)
	}
	if media != nil {
		id := media.StorageID
		card.StorageID = &id
	}

	seller, err := s.Users.GetByID(ctx, gig.SellerID)
	if errors.Is(err, models.ErrNoRecord) {
		return card, models.ErrSellerNotFound
	}
	if err != nil {
		return card, fmt.Errorf("gig %d seller: %w", gig.ID, err)
	}
	card.Seller = seller

	reviews, err := s.Reviews.ListByGig(ctx, gig.ID)
	if err != nil {
		return card, fmt.Errorf("gig %d reviews: %w", gig.ID, err)
	}
	card.Reviews = reviews
	card.AvgRating = AverageRating(reviews)

	card.Offer, err = s.Offers.FirstByGig(ctx, gig.ID)
	if err != nil {
		return card, fmt.Errorf("gig %d offer: %w", gig.ID, err)
	}
	return card, nil
}

// GetGigDetail returns the gig page. Drafts are only visible to their seller.
func (s *GigService) GetGigDetail(ctx context.Context, identity *models.Identity, id int) (models.GigDetail, error) {
	gig, err := s.Gigs.GetGigByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.GigDetail{}, models.ErrGigNotFound
	}
	if err != nil {
		return models.GigDetail{}, err
	}
	user, err := currentUser(ctx, s.Users, identity)
	if err != nil {
		return models.GigDetail{}, err
	}
	if !gig.Published && (user == nil || user.ID != gig.SellerID) {
		return models.GigDetail{}, models.ErrGigNotFound
	}

	detail := models.GigDetail{Gig: gig}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seller, err := s.Users.GetByID(gctx, gig.SellerID)
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrSellerNotFound
		}
		detail.Seller = seller
		return err
	})
	g.Go(func() error {
		sub, err := s.Categories.GetSubcategoryByID(gctx, gig.SubcategoryID)
		if err == nil {
			detail.Subcategory = sub.Name
		}
		if errors.Is(err, models.ErrNoRecord) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		offers, err := s.Offers.ListByGig(gctx, gig.ID)
		detail.Offers = offers
		return err
	})
	g.Go(func() error {
		images, err := s.Media.ListByGig(gctx, gig.ID)
		if err != nil {
			return err
		}
		detail.Images = s.withURLs(images)
		return nil
	})
	g.Go(func() error {
		reviews, err := s.Reviews.ListByGig(gctx, gig.ID)
		detail.Reviews = reviews
		return err
	})
	g.Go(func() error {
		if user == nil {
			return nil
		}
		fav, err := s.Favorites.IsFavorited(gctx, user.ID, gig.ID)
		detail.Favorited = fav
		return err
	})
	if err := g.Wait(); err != nil {
		return models.GigDetail{}, err
	}
	detail.Summary = Summarize(detail.Reviews)
	detail.AvgRating = AverageRating(detail.Reviews)
	return detail, nil
}

// publishedOnly drops drafts in place.
func publishedOnly(gigs []models.Gig) []models.Gig {
	out := gigs[:0]
	for _, g := range gigs {
		if g.Published {
			out = append(out, g)
		}
	}
	return out
}

// sortNewestFirst orders by creation time, newest first, ties by id.
func sortNewestFirst(gigs []models.Gig) {
	sort.SliceStable(gigs, func(i, j int) bool {
		if !gigs[i].CreatedAt.Equal(gigs[j].CreatedAt) {
			return gigs[i].CreatedAt.After(gigs[j].CreatedAt)
		}
		return gigs[i].ID > gigs[j].ID
	})
}

// withURLs fills presigned URLs where storage is configured. Unsignable
// entries keep an empty URL.
func (s *GigService) withURLs(images []models.Media) []models.Media {
	if s.Storage == nil {
		return images
	}
	for i := range images {
		url, err := s.Storage.PresignGet(images[i].StorageID)
		if err != nil {
			logOrNop(s.Logger).Errorf("presign %s: %v", images[i].StorageID, err)
			continue
		}
		images[i].URL = url
	}
	return images
}

func (s *GigService) CreateGig(ctx context.Context, identity *models.Identity, req models.CreateGigRequest) (models.Gig, error) {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.Gig{}, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.Gig{}, fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if _, err := s.Categories.GetSubcategoryByID(ctx, req.SubcategoryID); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Gig{}, fmt.Errorf("%w: unknown subcategory %d", models.ErrInvalidInput, req.SubcategoryID)
		}
		return models.Gig{}, err
	}
	return s.Gigs.CreateGig(ctx, models.Gig{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		SellerID:      user.ID,
		SubcategoryID: req.SubcategoryID,
	})
}

// ownedGig loads a gig and checks the caller is its seller.
func (s *GigService) ownedGig(ctx context.Context, identity *models.Identity, gigID int) (models.Gig, error) {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.Gig{}, err
	}
	gig, err := s.Gigs.GetGigByID(ctx, gigID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Gig{}, models.ErrGigNotFound
	}
	if err != nil {
		return models.Gig{}, err
	}
	if gig.SellerID != user.ID {
		return models.Gig{}, models.ErrForbidden
	}
	return gig, nil
}

// SetPublished publishes or unpublishes a gig. Publishing needs an offer so
// the listing card has a price.
func (s *GigService) SetPublished(ctx context.Context, identity *models.Identity, gigID int, published bool) error {
	gig, err := s.ownedGig(ctx, identity, gigID)
	if err != nil {
		return err
	}
	if published {
		offer, err := s.Offers.FirstByGig(ctx, gig.ID)
		if err != nil {
			return err
		}
		if offer == nil {
			return fmt.Errorf("%w: add an offer before publishing", models.ErrInvalidInput)
		}
	}
	return s.Gigs.SetPublished(ctx, gig.ID, published)
}

func (s *GigService) CreateOffer(ctx context.Context, identity *models.Identity, gigID int, req models.CreateOfferRequest) (models.Offer, error) {
	gig, err := s.ownedGig(ctx, identity, gigID)
	if err != nil {
		return models.Offer{}, err
	}
	tier := strings.ToLower(strings.TrimSpace(req.Tier))
	if tier == "" || req.Price <= 0 || req.DeliveryDays <= 0 || req.Revisions < 0 {
		return models.Offer{}, fmt.Errorf("%w: tier, positive price and delivery days are required", models.ErrInvalidInput)
	}
	offer := models.Offer{
		GigID:        gig.ID,
		Tier:         tier,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		DeliveryDays: req.DeliveryDays,
		Revisions:    req.Revisions,
	}
	if s.Prices != nil {
		priceID, err := s.Prices.CreatePrice(ctx, gig.Title+" ("+tier+")", req.Price)
		if err != nil {
			return models.Offer{}, fmt.Errorf("create stripe price: %w", err)
		}
		offer.StripePriceID = priceID
	}
	return s.Offers.CreateOffer(ctx, offer)
}

// UploadMedia stores a file for the caller's gig and records it.
func (s *GigService) UploadMedia(ctx context.Context, identity *models.Identity, gigID int, filename, contentType string, data []byte) (models.Media, error) {
	if s.Storage == nil {
		return models.Media{}, models.ErrStorageDisabled
	}
	gig, err := s.ownedGig(ctx, identity, gigID)
	if err != nil {
		return models.Media{}, err
	}
	if len(data) == 0 {
		return models.Media{}, fmt.Errorf("%w: empty file", models.ErrInvalidInput)
	}
	format := "image"
	if strings.HasPrefix(contentType, "video/") {
		format = "video"
	}
	key := storage.ObjectKey(gig.ID, filename)
	if err := s.Storage.Upload(ctx, key, contentType, data); err != nil {
		return models.Media{}, err
	}
	media, err := s.Media.CreateMedia(ctx, models.Media{GigID: gig.ID, StorageID: key, Format: format})
	if err != nil {
		return models.Media{}, err
	}
	if url, err := s.Storage.PresignGet(key); err == nil {
		media.URL = url
	}
	return media, nil
}
