package entity

import "time"

// Notification is a feed entry addressed to a provider (User holds the provider id).
type Notification struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	User      string    `json:"user"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
