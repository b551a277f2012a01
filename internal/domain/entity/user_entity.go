package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Clients and providers share this entity; Provider marks the ones that can be booked.
// PasswordHash holds the bcrypt hash, the plain password never reaches this struct.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Provider     bool
	AvatarID     *string
	Avatar       *File
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
