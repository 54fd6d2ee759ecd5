package webclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"skillsyncBack/internal/models"
)

type ListOptions struct {
	Search string
	Filter string
	// FavoritesOnly keeps only gigs the caller has favorited. The server
	// returns every match; filtering happens here.
	FavoritesOnly bool
}

// ListGigs fetches listing cards, then applies the favorites filter.
func (c *Client) ListGigs(ctx context.Context, opts ListOptions) ([]models.FullGig, error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Filter != "" {
		q.Set("filter", opts.Filter)
	}
	if opts.FavoritesOnly {
		q.Set("favorites", "true")
	}
	var gigs []models.FullGig
	if err := c.do(ctx, http.MethodGet, "/gigs", q, nil, &gigs); err != nil {
		return nil, err
	}
	if !opts.FavoritesOnly {
		return gigs, nil
	}
	return FavoritesOnly(gigs), nil
}

// FavoritesOnly returns the favorited cards in their original order.
func FavoritesOnly(gigs []models.FullGig) []models.FullGig {
	out := make([]models.FullGig, 0, len(gigs))
	for _, g := range gigs {
		if g.Favorited {
			out = append(out, g)
		}
	}
	return out
}

func (c *Client) GetGig(ctx context.Context, id int) (models.GigDetail, error) {
	var detail models.GigDetail
	err := c.do(ctx, http.MethodGet, "/gigs/"+strconv.Itoa(id), nil, nil, &detail)
	return detail, err
}

func (c *Client) GigStats(ctx context.Context) ([]models.GigStats, error) {
	var stats []models.GigStats
	err := c.do(ctx, http.MethodGet, "/sellers/me/stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) SellerProfile(ctx context.Context, username string) (models.SellerProfile, error) {
	var profile models.SellerProfile
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/profile", nil, nil, &profile)
	return profile, err
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories)
	return categories, err
}

func (c *Client) ReviewSummary(ctx context.Context, gigID int) (models.ReviewSummary, error) {
	var summary models.ReviewSummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/gigs/%d/reviews/summary", gigID), nil, nil, &summary)
	return summary, err
}

func (c *Client) AddFavorite(ctx context.Context, gigID int) error {
	return c.do(ctx, http.MethodPost, "/favorites/"+strconv.Itoa(gigID), nil, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, gigID int) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+strconv.Itoa(gigID), nil, nil, nil)
}

// Checkout returns the payment page URL for an offer.
func (c *Client) Checkout(ctx context.Context, offerID int) (string, error) {
	var resp models.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/checkout", nil, models.CheckoutRequest{OfferID: offerID}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
