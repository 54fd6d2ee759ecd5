package models

type Offer struct {
	ID            int     `json:"id"`
	GigID         int     `json:"gigId"`
	Tier          string  `json:"tier"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DeliveryDays  int     `json:"delivery_days"`
	Revisions     int     `json:"revisions"`
	StripePriceID string  `json:"stripePriceId"`
}

type CreateOfferRequest struct {
	Tier         string  `json:"tier"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
	Revisions    int     `json:"revisions"`
}
