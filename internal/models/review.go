package models

import (
	"encoding/json"
	"math"
	"time"
)

type Review struct {
	ID                 int       `json:"id"`
	GigID              int       `json:"gigId"`
	AuthorID           int       `json:"authorId"`
	SellerID           int       `json:"sellerId"`
	CommunicationLevel int       `json:"communication_level"`
	RecommendToAFriend int       `json:"recommend_to_a_friend"`
	ServiceAsDescribed int       `json:"service_as_described"`
	Content            string    `json:"content"`
	Author             *User     `json:"author,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type CreateReviewRequest struct {
	CommunicationLevel int    `json:"communication_level"`
	RecommendToAFriend int    `json:"recommend_to_a_friend"`
	ServiceAsDescribed int    `json:"service_as_described"`
	Content            string `json:"content"`
}

// RatingBreakdown holds per-dimension means.
type RatingBreakdown struct {
	CommunicationLevel float64 `json:"communication_level"`
	RecommendToAFriend float64 `json:"recommend_to_a_friend"`
	ServiceAsDescribed float64 `json:"service_as_described"`
}

// ReviewSummary is the review panel aggregate. Distribution[0] counts 5-star
// reviews, Distribution[4] counts 1-star reviews. Average is NaN when there
// are no reviews.
type ReviewSummary struct {
	Distribution [5]int          `json:"distribution"`
	Average      float64         `json:"average"`
	Breakdown    RatingBreakdown `json:"breakdown"`
	Count        int             `json:"count"`
}

// MarshalJSON writes a NaN average as null; encoding/json rejects NaN.
func (s ReviewSummary) MarshalJSON() ([]byte, error) {
	var avg *float64
	if !math.IsNaN(s.Average) && !math.IsInf(s.Average, 0) {
		v := s.Average
		avg = &v
	}
	return json.Marshal(struct {
		Distribution [5]int          `json:"distribution"`
		Average      *float64        `json:"average"`
		Breakdown    RatingBreakdown `json:"breakdown"`
		Count        int             `json:"count"`
	}{s.Distribution, avg, s.Breakdown, s.Count})
}

// UnmarshalJSON maps a null average back to NaN.
func (s *ReviewSummary) UnmarshalJSON(data []byte) error {
	var raw struct {
		Distribution [5]int          `json:"distribution"`
		Average      *float64        `json:"average"`
		Breakdown    RatingBreakdown `json:"breakdown"`
		Count        int             `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Distribution = raw.Distribution
	s.Breakdown = raw.Breakdown
	s.Count = raw.Count
	s.Average = math.NaN()
	if raw.Average != nil {
		s.Average = *raw.Average
	}
	return nil
}
