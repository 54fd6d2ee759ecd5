package services

import (
	"context"
	"errors"
	"strings"

	"skillsyncBack/internal/models"
)

type ReviewService struct {
	Users   UserStore
	Gigs    GigStore
	Reviews ReviewStore
}

// CreateReview records the caller's review of a gig. Each sub-score must be
// 1..5; sellers cannot review their own gigs and buyers review a gig once.
func (s *ReviewService) CreateReview(ctx context.Context, identity *models.Identity, gigID int, req models.CreateReviewRequest) (models.Review, error) {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.Review{}, err
	}
	if !ValidScore(req.CommunicationLevel) || !ValidScore(req.RecommendToAFriend) || !ValidScore(req.ServiceAsDescribed) {
		return models.Review{}, models.ErrInvalidScore
	}
	gig, err := s.Gigs.GetGigByID(ctx, gigID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Review{}, models.ErrGigNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	if gig.SellerID == user.ID {
		return models.Review{}, models.ErrOwnGigReview
	}

	rev, err := s.Reviews.CreateReview(ctx, models.Review{
		GigID:              gig.ID,
		AuthorID:           user.ID,
		SellerID:           gig.SellerID,
		CommunicationLevel: req.CommunicationLevel,
		RecommendToAFriend: req.RecommendToAFriend,
		ServiceAsDescribed: req.ServiceAsDescribed,
		Content:            strings.TrimSpace(req.Content),
	})
	if err != nil {
		return models.Review{}, err
	}
	rev.Author = &user
	return rev, nil
}

// Summary returns the review panel aggregate for a gig.
func (s *ReviewService) Summary(ctx context.Context, gigID int) (models.ReviewSummary, error) {
	if _, err := s.Gigs.GetGigByID(ctx, gigID); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ReviewSummary{}, models.ErrGigNotFound
		}
		return models.ReviewSummary{}, err
	}
	reviews, err := s.Reviews.ListByGig(ctx, gigID)
	if err != nil {
		return models.ReviewSummary{}, err
	}
	return Summarize(reviews), nil
}
