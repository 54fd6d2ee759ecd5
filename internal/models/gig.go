package models

import "time"

type Gig struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SellerID      int       `json:"sellerId"`
	SubcategoryID int       `json:"subcategoryId"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullGig is a listing card: the gig joined with its first image, seller,
// reviews and first offer.
type FullGig struct {
	Gig
	Favorited bool     `json:"favorited"`
	StorageID *string  `json:"storageId,omitempty"`
	Seller    User     `json:"seller"`
	Reviews   []Review `json:"reviews"`
	Offer     *Offer   `json:"offer,omitempty"`
	AvgRating float64  `json:"avgRating"`
}

type GigListParams struct {
	Search    string `json:"search,omitempty"`
	Favorites string `json:"favorites,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

// GigStats is one row of the seller dashboard.
type GigStats struct {
	Gig
	OrderAmount  int     `json:"orderAmount"`
	TotalRevenue float64 `json:"totalRevenue"`
	PaidRevenue  float64 `json:"paidRevenue"`
	ImageURL     *string `json:"ImageUrl"`
}

type GigWithImages struct {
	Gig
	Images []Media `json:"images"`
}

type GigDetail struct {
	Gig         Gig           `json:"gig"`
	Seller      User          `json:"seller"`
	Subcategory string        `json:"subcategory"`
	Offers      []Offer       `json:"offers"`
	Images      []Media       `json:"images"`
	Reviews     []Review      `json:"reviews"`
	Summary     ReviewSummary `json:"summary"`
	AvgRating   float64       `json:"avgRating"`
	Favorited   bool          `json:"favorited"`
}

type CreateGigRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	SubcategoryID int    `json:"subcategoryId"`
}
