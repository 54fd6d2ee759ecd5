package models

import "time"

type Media struct {
	ID        int       `json:"id"`
	GigID     int       `json:"gigId"`
	StorageID string    `json:"storageId"`
	Format    string    `json:"format"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
