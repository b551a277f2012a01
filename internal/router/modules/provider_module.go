package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

type ProviderModule struct {
	Handler  *handlers.ProviderHandler
	Verifier middleware.TokenVerifier
}

func NewProviderModule(h *handlers.ProviderHandler, verifier middleware.TokenVerifier) *ProviderModule {
	return &ProviderModule{Handler: h, Verifier: verifier}
}

func (m *ProviderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/providers")
	auth.Use(protected(m.Verifier)...)
	{
		auth.GET("", m.Handler.List)
		auth.GET("/:id/available", m.Handler.Available)
	}
}

func (m *ProviderModule) Name() string { return "providers" }
