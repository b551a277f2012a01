package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-barber/internal/domain/entity"
)

// AppointmentRepository persists appointments in the relational store.
type AppointmentRepository interface {
	// Create returns ErrSlotTaken when another active appointment holds the provider hour.
	Create(ctx context.Context, a *entity.Appointment) error
	// GetByID loads the appointment with Provider and User joined.
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	// FindActiveByProviderAndDate returns ErrNotFound when the slot is free.
	FindActiveByProviderAndDate(ctx context.Context, providerID string, date time.Time) (*entity.Appointment, error)
	// ListActiveByUser returns the requester's active appointments ordered by date,
	// with Provider (and its avatar) joined.
	ListActiveByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Appointment, error)
	// ListActiveByProviderBetween returns active provider appointments in [from, to),
	// ordered by date, with User joined.
	ListActiveByProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]entity.Appointment, error)
	Cancel(ctx context.Context, id string, at time.Time) error
}
