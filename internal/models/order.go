package models

import "time"

const (
	OrderStatusPaid     = "paid"
	OrderStatusPending  = "pending"
	OrderStatusRefunded = "refunded"
)

type Order struct {
	ID              int       `json:"id"`
	GigID           int       `json:"gigId"`
	OfferID         int       `json:"offerId"`
	BuyerID         int       `json:"buyerId"`
	SellerID        int       `json:"sellerId"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	StripeSessionID string    `json:"stripeSessionId"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CheckoutRequest struct {
	OfferID int `json:"offerId"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
