package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-barber/internal/container"
	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

type FileModule struct {
	Handler  *handlers.FileHandler
	Verifier middleware.TokenVerifier
}

func NewFileModule(h *handlers.FileHandler, verifier middleware.TokenVerifier) *FileModule {
	return &FileModule{Handler: h, Verifier: verifier}
}

func (m *FileModule) Register(rg *gin.RouterGroup) {
	// uploads get a tighter per-user budget on top of the shared one
	uploadLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Hour, middleware.KeyByUserID(), nil)

	auth := rg.Group("/files")
	auth.Use(protected(m.Verifier)...)
	{
		auth.POST("", uploadLimiter, m.Handler.Upload)
	}
}

func (m *FileModule) Name() string { return "files" }
