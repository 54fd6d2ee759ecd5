package services

import (
	"math"

	"skillsyncBack/internal/models"
)

// reviewMean is the mean of a review's three sub-scores.
func reviewMean(r models.Review) float64 {
	return float64(r.CommunicationLevel+r.RecommendToAFriend+r.ServiceAsDescribed) / 3
}

// StarBucket maps a review to its histogram slot: 5 stars is 0, 1 star is 4.
// The mean is rounded half-up. ok is false when the rounded mean falls
// outside 1..5.
func StarBucket(r models.Review) (bucket int, ok bool) {
	rounded := int(math.Floor(reviewMean(r) + 0.5))
	if rounded < 1 || rounded > 5 {
		return 0, false
	}
	return 5 - rounded, true
}

// Summarize builds the review panel aggregate. Average is NaN for no reviews;
// the breakdown is zero.
func Summarize(reviews []models.Review) models.ReviewSummary {
	summary := models.ReviewSummary{Count: len(reviews), Average: math.NaN()}
	if len(reviews) == 0 {
		return summary
	}

	var comm, rec, svc float64
	for _, r := range reviews {
		if b, ok := StarBucket(r); ok {
			summary.Distribution[b]++
		}
		comm += float64(r.CommunicationLevel)
		rec += float64(r.RecommendToAFriend)
		svc += float64(r.ServiceAsDescribed)
	}
	n := float64(len(reviews))
	summary.Average = meanRating(reviews)
	summary.Breakdown = models.RatingBreakdown{
		CommunicationLevel: comm / n,
		RecommendToAFriend: rec / n,
		ServiceAsDescribed: svc / n,
	}
	return summary
}

// meanRating is the sum of every sub-score over 3n, NaN for no reviews.
// Every average rating shown anywhere comes from here.
func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return math.NaN()
	}
	var total int
	for _, r := range reviews {
		total += r.CommunicationLevel + r.RecommendToAFriend + r.ServiceAsDescribed
	}
	return float64(total) / float64(3*len(reviews))
}

// AverageRating is the average used on listing cards, profile cards, the
// seller panel and chat recommendations. 0 for no reviews.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	return meanRating(reviews)
}

// Breakdown returns the per-dimension means, zero for no reviews.
func Breakdown(reviews []models.Review) models.RatingBreakdown {
	return Summarize(reviews).Breakdown
}

// DisplayRating rounds to one decimal for display.
func DisplayRating(avg float64) float64 {
	if math.IsNaN(avg) {
		return 0
	}
	return math.Round(avg*10) / 10
}

// ValidScore reports whether a submitted sub-score is in 1..5.
func ValidScore(s int) bool {
	return s >= 1 && s <= 5
}
