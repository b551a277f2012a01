package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

// SessionService authenticates users and issues/validates stateless session tokens.
type SessionService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewSessionService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Users: users, JWT: jwt, Logger: logger}
}

type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Authenticate checks email/password and issues a token embedding the user id.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// VerifyToken returns the user id embedded in a valid, unexpired token.
func (s *SessionService) VerifyToken(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrTokenMissing
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims.UserID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
