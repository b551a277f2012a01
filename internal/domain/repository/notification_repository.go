package repository

import (
	"context"

	"github.com/oksasatya/go-barber/internal/domain/entity"
)

// NotificationRepository is the provider notification feed, kept outside the relational store.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	// MarkRead returns ErrNotFound for unknown ids.
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
}
