package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsyncBack/internal/models"
)

func gigIDs(cards []models.FullGig) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestListGigs_PublishedNewestFirst(t *testing.T) {
	w := newWorld()
	cards, err := w.gigService().ListGigs(context.Background(), nil, models.GigListParams{})
	require.NoError(t, err)

	assert.Equal(t, []int{100, 101}, gigIDs(cards))
	for _, c := range cards {
		assert.False(t, c.Favorited, "gig %d", c.ID)
	}
}

func TestListGigs_AssemblesCard(t *testing.T) {
	w := newWorld()
	cards, err := w.gigService().ListGigs(context.Background(), nil, models.GigListParams{})
	require.NoError(t, err)

	card := cards[0]
	require.NotNil(t, card.StorageID)
	assert.Equal(t, "gigs/100/a.png", *card.StorageID)
	assert.Equal(t, "alice", card.Seller.Username)
	assert.Len(t, card.Reviews, 2)
	require.NotNil(t, card.Offer)
	assert.Equal(t, 1000, card.Offer.ID)
	assert.InDelta(t, 3.8333, card.AvgRating, 1e-3)

	empty := cards[1]
	assert.Nil(t, empty.StorageID)
	assert.Empty(t, empty.Reviews)
	assert.Zero(t, empty.AvgRating)
}

func TestListGigs_FavoritedForCaller(t *testing.T) {
	w := newWorld()
	cards, err := w.gigService().ListGigs(context.Background(), ident("tok-bob"), models.GigListParams{})
	require.NoError(t, err)

	got := map[int]bool{}
	for _, c := range cards {
		got[c.ID] = c.Favorited
	}
	assert.Equal(t, map[int]bool{100: false, 101: true}, got)

	// alice has no favorites even though she sells both gigs.
	cards, err = w.gigService().ListGigs(context.Background(), ident("tok-alice"), models.GigListParams{})
	require.NoError(t, err)
	for _, c := range cards {
		assert.False(t, c.Favorited)
	}
}

func TestListGigs_UnknownIdentityIsAnonymous(t *testing.T) {
	w := newWorld()
	cards, err := w.gigService().ListGigs(context.Background(), ident("tok-nobody"), models.GigListParams{})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	for _, c := range cards {
		assert.False(t, c.Favorited)
	}
}

func TestListGigs_Filter(t *testing.T) {
	w := newWorld()
	svc := w.gigService()

	cards, err := svc.ListGigs(context.Background(), nil, models.GigListParams{Filter: "Logo Design"})
	require.NoError(t, err)
	assert.Equal(t, []int{100}, gigIDs(cards))

	cards, err = svc.ListGigs(context.Background(), nil, models.GigListParams{Filter: "Basket Weaving"})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

// unfilteredGigs returns every stored gig, drafts included, in insertion
// order from both listing queries.
type unfilteredGigs struct {
	*fakeGigs
}

func (u unfilteredGigs) all() []models.Gig {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]models.Gig(nil), u.gigs...)
}

func (u unfilteredGigs) ListPublished(ctx context.Context) ([]models.Gig, error) {
	return u.all(), nil
}

func (u unfilteredGigs) SearchPublished(ctx context.Context, text string) ([]models.Gig, error) {
	text = strings.ToLower(text)
	var out []models.Gig
	for _, g := range u.all() {
		if strings.Contains(strings.ToLower(g.Title), text) {
			out = append(out, g)
		}
	}
	return out, nil
}

func TestListGigs_SearchExcludesDrafts(t *testing.T) {
	w := newWorld()
	svc := w.gigService()
	svc.Gigs = unfilteredGigs{w.gigs}

	cards, err := svc.ListGigs(context.Background(), nil, models.GigListParams{Search: "logo"})
	require.NoError(t, err)
	assert.Equal(t, []int{100}, gigIDs(cards))
}

func TestListGigs_ExcludesDraftsNewestFirst(t *testing.T) {
	w := newWorld()
	w.gigs.gigs = append(w.gigs.gigs,
		models.Gig{ID: 103, Title: "Old banner", SellerID: 1, SubcategoryID: 10, Published: true, CreatedAt: t0},
		models.Gig{ID: 104, Title: "Fresh icon", SellerID: 1, SubcategoryID: 10, Published: true, CreatedAt: t0.Add(5 * time.Hour)},
	)
	svc := w.gigService()
	svc.Gigs = unfilteredGigs{w.gigs}

	cards, err := svc.ListGigs(context.Background(), nil, models.GigListParams{})
	require.NoError(t, err)
	assert.Equal(t, []int{104, 100, 101, 103}, gigIDs(cards))
}

func TestAgentFeed_ExcludesDrafts(t *testing.T) {
	w := newWorld()
	svc := w.recommendationService(nil)
	svc.Gigs = unfilteredGigs{w.gigs}

	feed, err := svc.AgentFeed(context.Background())
	require.NoError(t, err)
	ids := make([]int, len(feed))
	for i, g := range feed {
		ids[i] = g.GigID
	}
	assert.Equal(t, []int{100, 101}, ids)
}

func TestListGigs_MissingSeller(t *testing.T) {
	w := newWorld()
	w.gigs.gigs = append(w.gigs.gigs, models.Gig{ID: 200, Title: "Orphan", SellerID: 99, SubcategoryID: 10, Published: true, CreatedAt: t0})

	_, err := w.gigService().ListGigs(context.Background(), nil, models.GigListParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSellerNotFound))
	assert.Equal(t, "Seller not found", err.Error())
}

func TestListGigs_ConcurrencyLimitOfOne(t *testing.T) {
	w := newWorld()
	svc := w.gigService()
	svc.FanOut = 1
	cards, err := svc.ListGigs(context.Background(), nil, models.GigListParams{})
	require.NoError(t, err)
	assert.Equal(t, []int{100, 101}, gigIDs(cards))
}

func TestGetGigDetail(t *testing.T) {
	w := newWorld()
	svc := w.gigService()

	detail, err := svc.GetGigDetail(context.Background(), ident("tok-bob"), 100)
	require.NoError(t, err)
	assert.Equal(t, "Logo Design", detail.Subcategory)
	assert.Len(t, detail.Offers, 2)
	require.Len(t, detail.Images, 2)
	assert.Equal(t, "https://cdn.test/gigs/100/a.png", detail.Images[0].URL)
	assert.Equal(t, 2, detail.Summary.Count)
	assert.Equal(t, [5]int{1, 0, 1, 0, 0}, detail.Summary.Distribution)
	assert.False(t, detail.Favorited)

	_, err = svc.GetGigDetail(context.Background(), ident("tok-bob"), 102)
	assert.ErrorIs(t, err, models.ErrGigNotFound)

	draft, err := svc.GetGigDetail(context.Background(), ident("tok-alice"), 102)
	require.NoError(t, err)
	assert.False(t, draft.Gig.Published)

	_, err = svc.GetGigDetail(context.Background(), nil, 999)
	assert.ErrorIs(t, err, models.ErrGigNotFound)
}

func TestCreateGigAndPublish(t *testing.T) {
	w := newWorld()
	prices := &fakePrices{}
	svc := w.gigService()
	svc.Prices = prices
	ctx := context.Background()

	_, err := svc.CreateGig(ctx, nil, models.CreateGigRequest{Title: "x", SubcategoryID: 10})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.CreateGig(ctx, ident("tok-alice"), models.CreateGigRequest{Title: "x", SubcategoryID: 77})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	gig, err := svc.CreateGig(ctx, ident("tok-alice"), models.CreateGigRequest{Title: " Icon set ", SubcategoryID: 10})
	require.NoError(t, err)
	assert.Equal(t, "Icon set", gig.Title)
	assert.False(t, gig.Published)

	err = svc.SetPublished(ctx, ident("tok-alice"), gig.ID, true)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.SetPublished(ctx, ident("tok-bob"), gig.ID, true)
	assert.ErrorIs(t, err, models.ErrForbidden)

	offer, err := svc.CreateOffer(ctx, ident("tok-alice"), gig.ID, models.CreateOfferRequest{Tier: "Basic", Price: 20, DeliveryDays: 3})
	require.NoError(t, err)
	assert.Equal(t, "basic", offer.Tier)
	assert.Equal(t, "price_test", offer.StripePriceID)
	assert.Equal(t, []string{"Icon set (basic)"}, prices.names)

	require.NoError(t, svc.SetPublished(ctx, ident("tok-alice"), gig.ID, true))
	cards, err := svc.ListGigs(ctx, nil, models.GigListParams{Search: "icon"})
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCreateOffer_Validation(t *testing.T) {
	w := newWorld()
	_, err := w.gigService().CreateOffer(context.Background(), ident("tok-alice"), 100, models.CreateOfferRequest{Tier: "basic", Price: 0, DeliveryDays: 1})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUploadMedia(t *testing.T) {
	w := newWorld()
	svc := w.gigService()
	ctx := context.Background()

	media, err := svc.UploadMedia(ctx, ident("tok-alice"), 101, "shot.PNG", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "image", media.Format)
	assert.Contains(t, media.StorageID, "gigs/101/")
	assert.Equal(t, "https://cdn.test/"+media.StorageID, media.URL)
	assert.Equal(t, []byte("png"), w.storage.uploaded[media.StorageID])

	_, err = svc.UploadMedia(ctx, ident("tok-alice"), 101, "empty.png", "image/png", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	svc.Storage = nil
	_, err = svc.UploadMedia(ctx, ident("tok-alice"), 101, "a.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, models.ErrStorageDisabled)
}
