package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

// ProvidersCacheKey holds the cached provider list.
const ProvidersCacheKey = "providers:list"

// WorkingHours are the bookable slot start hours of a provider day.
var WorkingHours = []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

type ProviderService struct {
	Users        repo.UserRepository
	Appointments repo.AppointmentRepository
	Redis        *redis.Client
	CacheTTL     time.Duration
	Logger       *logrus.Logger
	Now          func() time.Time
}

func NewProviderService(users repo.UserRepository, appointments repo.AppointmentRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *ProviderService {
	return &ProviderService{
		Users:        users,
		Appointments: appointments,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
		Logger:       logger,
		Now:          time.Now,
	}
}

// List returns every provider with avatar, served from Redis when cached.
func (s *ProviderService) List(ctx context.Context) ([]entity.User, error) {
	return helpers.RedisCached(ctx, s.Redis, ProvidersCacheKey, s.CacheTTL, s.loadProviders, func(op string, err error) {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("key", ProvidersCacheKey).Warn("redis " + op + " failed")
		}
	})
}

func (s *ProviderService) loadProviders(ctx context.Context) ([]entity.User, error) {
	providers, err := s.Users.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	for i := range providers {
		providers[i].PasswordHash = ""
	}
	return providers, nil
}

// Slot is one bookable hour of a provider day.
type Slot struct {
	Time      string    `json:"time"`
	Value     time.Time `json:"value"`
	Available bool      `json:"available"`
}

// Available lists the provider's working-hour slots on day. A slot is available when it
// is still in the future and holds no active appointment.
func (s *ProviderService) Available(ctx context.Context, providerID string, day time.Time) ([]Slot, error) {
	p, err := s.Users.GetByID(ctx, providerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidProvider
	}
	if err != nil {
		return nil, fmt.Errorf("load provider: %w", err)
	}
	if !p.Provider {
		return nil, ErrInvalidProvider
	}

	from := startOfDay(day)
	booked, err := s.Appointments.ListActiveByProviderBetween(ctx, providerID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, a := range booked {
		taken[a.Date.Unix()] = struct{}{}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	slots := make([]Slot, 0, len(WorkingHours))
	for _, h := range WorkingHours {
		at := time.Date(from.Year(), from.Month(), from.Day(), h, 0, 0, 0, from.Location())
		_, isTaken := taken[at.Unix()]
		slots = append(slots, Slot{
			Time:      at.Format("15:04"),
			Value:     at,
			Available: at.After(now) && !isTaken,
		})
	}
	return slots, nil
}
