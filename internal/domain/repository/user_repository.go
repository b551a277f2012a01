package repository

import (
	"context"

	"github.com/oksasatya/go-barber/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Get methods return ErrNotFound when no row matches; Create and Update return
// ErrDuplicateEmail when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	ListProviders(ctx context.Context) ([]entity.User, error)
}
