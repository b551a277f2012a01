package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
)

// NotificationsLimit caps the provider feed.
const NotificationsLimit = 20

type NotificationService struct {
	Notifications repo.NotificationRepository
	Users         repo.UserRepository
}

func NewNotificationService(notifications repo.NotificationRepository, users repo.UserRepository) *NotificationService {
	return &NotificationService{Notifications: notifications, Users: users}
}

// ListForProvider returns the caller's newest notifications. Only providers have a feed.
func (s *NotificationService) ListForProvider(ctx context.Context, userID string) ([]entity.Notification, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotProvider
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.Provider {
		return nil, ErrNotProvider
	}
	out, err := s.Notifications.ListByUser(ctx, userID, NotificationsLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := s.Notifications.MarkRead(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}
