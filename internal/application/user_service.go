package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

type UserService struct {
	Users  repo.UserRepository
	Files  repo.FileRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, files repo.FileRepository, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Files: files, Redis: rdb, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Provider bool
}

// Register creates a user after checking the email is free. The password is only kept as a hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Provider:     in.Provider,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if u.Provider {
		s.invalidateProviders(ctx)
	}
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// UpdateProfileInput is a partial update; zero values are left untouched.
// AvatarID set to an empty string detaches the avatar.
type UpdateProfileInput struct {
	Name            string
	Email           string
	OldPassword     string
	Password        string
	ConfirmPassword string
	AvatarID        *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := normalizeEmail(in.Email); email != "" && email != u.Email {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
		u.Email = email
	}

	if in.OldPassword != "" && !helpers.CheckPassword(u.PasswordHash, in.OldPassword) {
		return nil, ErrInvalidCredentials
	}
	if in.Password != "" {
		if in.OldPassword == "" {
			return nil, ErrInvalidCredentials
		}
		if in.ConfirmPassword != in.Password {
			return nil, ErrPasswordMismatch
		}
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}

	if in.AvatarID != nil {
		if *in.AvatarID == "" {
			u.AvatarID = nil
		} else {
			f, err := s.Files.GetByID(ctx, *in.AvatarID)
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrFileNotFound
			}
			if err != nil {
				return nil, fmt.Errorf("load file: %w", err)
			}
			u.AvatarID = &f.ID
		}
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if u.Provider {
		s.invalidateProviders(ctx)
	}
	// reload so the avatar is resolved
	return s.GetProfile(ctx, u.ID)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return ErrUserExists
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

func (s *UserService) invalidateProviders(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, ProvidersCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", ProvidersCacheKey).Warn("redis invalidate failed")
	}
}
