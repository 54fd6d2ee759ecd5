package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"skillsyncBack/internal/models"
)

// Recommender ranks catalog gigs against a buyer conversation.
type Recommender interface {
	Recommend(ctx context.Context, messages []models.ChatMessage, feed []models.AgentGig) (models.RecommendationsResponse, error)
}

type RecommendationService struct {
	Users      UserStore
	Gigs       GigStore
	Offers     OfferStore
	Reviews    ReviewStore
	Categories CategoryStore
	Agent      Recommender
	Logger     Logger
	FanOut     int
}

// AgentFeed flattens every published gig for the recommendation agent.
// Missing sellers or subcategories become empty strings; review dimensions
// are 0 when a gig has no reviews.
func (s *RecommendationService) AgentFeed(ctx context.Context) ([]models.AgentGig, error) {
	feed, _, err := s.buildFeed(ctx)
	return feed, err
}

// buildFeed returns the feed plus each gig's AverageRating keyed by gig id.
func (s *RecommendationService) buildFeed(ctx context.Context) ([]models.AgentGig, map[int]float64, error) {
	gigs, err := s.Gigs.ListPublished(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list published gigs: %w", err)
	}
	gigs = publishedOnly(gigs)

	subs, err := s.Categories.ListSubcategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("preload subcategories: %w", err)
	}
	subNames := make(map[int]string, len(subs))
	for _, sub := range subs {
		subNames[sub.ID] = sub.Name
	}

	users, err := s.Users.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("preload users: %w", err)
	}
	usernames := make(map[int]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	var mu sync.Mutex
	records := make(map[int]models.AgentGig, len(gigs))
	ratings := make(map[int]float64, len(gigs))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.FanOut
	if limit <= 0 {
		limit = defaultFanOut
	}
	g.SetLimit(limit)
	for _, gig := range gigs {
		g.Go(func() error {
			reviews, err := s.Reviews.ListByGig(gctx, gig.ID)
			if err != nil {
				return fmt.Errorf("gig %d reviews: %w", gig.ID, err)
			}
			offers, err := s.Offers.ListByGig(gctx, gig.ID)
			if err != nil {
				return fmt.Errorf("gig %d offers: %w", gig.ID, err)
			}
			rec := models.AgentGig{
				Username:       usernames[gig.SellerID],
				GigID:          gig.ID,
				GigTitle:       gig.Title,
				GigDescription: PlainDescription(gig.Description),
				Subcategory:    subNames[gig.SubcategoryID],
				Reviews:        Breakdown(reviews),
				Offers:         make(map[string]models.AgentOffer, len(offers)),
			}
			for _, o := range offers {
				rec.Offers[o.Tier] = models.AgentOffer{Price: o.Price, DeliveryDays: o.DeliveryDays}
			}
			mu.Lock()
			records[gig.ID] = rec
			ratings[gig.ID] = AverageRating(reviews)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	feed := make([]models.AgentGig, 0, len(gigs))
	for _, gig := range gigs {
		feed = append(feed, records[gig.ID])
	}
	return feed, ratings, nil
}

type richTextNode struct {
	Text    string         `json:"text"`
	Content []richTextNode `json:"content"`
}

// PlainDescription extracts the first text node of a rich-text JSON
// description ([0].content[0].text). Plain-text descriptions are returned
// unchanged; JSON of any other shape yields "".
func PlainDescription(desc string) string {
	trimmed := strings.TrimSpace(desc)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return desc
	}
	var doc []richTextNode
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return ""
	}
	if len(doc) == 0 || len(doc[0].Content) == 0 {
		return ""
	}
	return doc[0].Content[0].Text
}

// Chat runs the recommendation agent over the current feed. Reported
// ratings are replaced with the catalog's own average for the gig.
func (s *RecommendationService) Chat(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error) {
	if s.Agent == nil {
		return models.RecommendationsResponse{}, models.ErrAgentDisabled
	}
	feed, ratings, err := s.buildFeed(ctx)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}
	resp, err := s.Agent.Recommend(ctx, messages, feed)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []models.Recommendation{}
	}

	for i := range resp.Recommendations {
		id, err := strconv.Atoi(resp.Recommendations[i].GigID)
		if err != nil {
			continue
		}
		if avg, ok := ratings[id]; ok {
			resp.Recommendations[i].AvgRating = DisplayRating(avg)
		}
	}
	return resp, nil
}
