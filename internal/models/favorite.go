package models

type Favorite struct {
	ID     int `json:"id"`
	UserID int `json:"userId"`
	GigID  int `json:"gigId"`
}
