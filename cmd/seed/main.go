package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/config"
	app "github.com/oksasatya/go-barber/internal/application"
	pginfra "github.com/oksasatya/go-barber/internal/infrastructure/postgres"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Provider bool
}

var seedUsers = []seedUser{
	{Name: "Demo Barber", Email: "barber@gobarber.com.br", Password: "123456", Provider: true},
	{Name: "Demo Client", Email: "client@gobarber.com.br", Password: "123456"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	for _, u := range seedUsers {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			logger.WithError(err).Fatal("failed to hash password")
		}
		var id string
		err = pool.QueryRow(ctx, `
			INSERT INTO users (name, email, password_hash, provider)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT ON CONSTRAINT users_email_key
			DO UPDATE SET name = EXCLUDED.name, provider = EXCLUDED.provider, updated_at = now()
			RETURNING id
		`, u.Name, u.Email, hash, u.Provider).Scan(&id)
		if err != nil {
			logger.WithError(err).WithField("email", u.Email).Fatal("failed to seed user")
		}
		helpers.LogInfo(logger, "seeded user", logrus.Fields{
			"id": id, "email": u.Email, "provider": u.Provider, "password": u.Password,
		})
	}

	// the provider list is cached; drop it so the seeded provider shows up
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.RedisDel(ctx, rdb, app.ProvidersCacheKey); err != nil {
		logger.WithError(err).Warn("failed to invalidate providers cache")
	}
}
