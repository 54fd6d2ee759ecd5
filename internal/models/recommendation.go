package models

// AgentGig is the flattened catalog record handed to the recommendation
// agent. Field names are part of the agent prompt contract.
type AgentGig struct {
	Username       string                `json:"username"`
	GigID          int                   `json:"gigId"`
	GigTitle       string                `json:"gigTitle"`
	GigDescription string                `json:"gigDescription"`
	Subcategory    string                `json:"subcategory"`
	Reviews        RatingBreakdown       `json:"reviews"`
	Offers         map[string]AgentOffer `json:"offers"`
}

type AgentOffer struct {
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
}

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type Recommendation struct {
	SellerName   string  `json:"sellerName"`
	GigTitle     string  `json:"gigTitle"`
	Reason       string  `json:"reason"`
	MatchScore   float64 `json:"matchScore"`
	AvgRating    float64 `json:"avgRating"`
	GigID        string  `json:"gigId"`
	SelectedTier string  `json:"selectedTier,omitempty"`
	Price        float64 `json:"price,omitempty"`
	DeliveryDays int     `json:"delivery_days,omitempty"`
}

type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}
