package models

import "time"

type User struct {
	ID              int       `json:"id"`
	TokenIdentifier string    `json:"-"`
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CustomTag       string    `json:"customTag"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Language struct {
	UserID   int    `json:"userId"`
	Language string `json:"language"`
}

type Skill struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Skill  string `json:"skill"`
}

// SellerProfile is the profile card view of a seller.
type SellerProfile struct {
	Seller      User     `json:"seller"`
	Languages   []string `json:"languages"`
	Country     string   `json:"country"`
	Reviews     []Review `json:"reviews"`
	AvgRating   float64  `json:"avgRating"`
	ReviewCount int      `json:"reviewCount"`
}
