package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
	"github.com/oksasatya/go-barber/pkg/response"
)

type NotificationHandler struct {
	Svc    *app.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *app.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	out, err := h.Svc.ListForProvider(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, out, "notifications", nil)
}

// MarkRead PUT /api/notifications/:id
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, n, "notification read", nil)
}
