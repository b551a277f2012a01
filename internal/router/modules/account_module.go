package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-barber/internal/container"
	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

// AccountModule wires sign-up, sign-in and profile update.
// Public: POST /api/users, POST /api/sessions
// Protected: PUT /api/users
type AccountModule struct {
	Users    *handlers.UserHandler
	Sessions *handlers.SessionHandler
	Verifier middleware.TokenVerifier
}

func NewAccountModule(users *handlers.UserHandler, sessions *handlers.SessionHandler, verifier middleware.TokenVerifier) *AccountModule {
	return &AccountModule{Users: users, Sessions: sessions, Verifier: verifier}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	allow := middleware.AllowInDevelopment(container.GetConfig().Env)
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), allow)
	sessionLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), allow)

	rg.POST("/users", signupLimiter, m.Users.Register)
	rg.POST("/sessions", sessionLimiter, m.Sessions.Create)

	auth := rg.Group("/")
	auth.Use(protected(m.Verifier)...)
	{
		auth.PUT("/users", m.Users.UpdateProfile)
	}
}

// protected is the middleware chain shared by authenticated routes.
func protected(verifier middleware.TokenVerifier) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Auth(verifier),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	}
}

func (m *AccountModule) Name() string { return "accounts" }
