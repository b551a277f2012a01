package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

// AppointmentModule: GET/POST /api/appointments, DELETE /api/appointments/:id, GET /api/schedule
type AppointmentModule struct {
	Handler  *handlers.AppointmentHandler
	Verifier middleware.TokenVerifier
}

func NewAppointmentModule(h *handlers.AppointmentHandler, verifier middleware.TokenVerifier) *AppointmentModule {
	return &AppointmentModule{Handler: h, Verifier: verifier}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(protected(m.Verifier)...)
	{
		auth.GET("/appointments", m.Handler.List)
		auth.POST("/appointments", m.Handler.Create)
		auth.DELETE("/appointments/:id", m.Handler.Cancel)
		auth.GET("/schedule", m.Handler.Schedule)
	}
}

func (m *AppointmentModule) Name() string { return "appointments" }
