package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

type NotificationModule struct {
	Handler  *handlers.NotificationHandler
	Verifier middleware.TokenVerifier
}

func NewNotificationModule(h *handlers.NotificationHandler, verifier middleware.TokenVerifier) *NotificationModule {
	return &NotificationModule{Handler: h, Verifier: verifier}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notifications")
	auth.Use(protected(m.Verifier)...)
	{
		auth.GET("", m.Handler.List)
		auth.PUT("/:id", m.Handler.MarkRead)
	}
}

func (m *NotificationModule) Name() string { return "notifications" }
