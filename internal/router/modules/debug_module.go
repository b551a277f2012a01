package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-barber/internal/container"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
)

// DebugModule exposes the process counters (booked, canceled, slot conflicts, mail jobs)
// together with the runtime memstats.
type DebugModule struct {
	Env string
}

func NewDebugModule(env string) *DebugModule { return &DebugModule{Env: env} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(),
		middleware.AllowInDevelopment(m.Env))
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) Name() string { return "debug" }
