package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/pkg/response"
)

type ProviderHandler struct {
	Svc    *app.ProviderService
	Logger *logrus.Logger
	view   presenter
}

func NewProviderHandler(svc *app.ProviderService, logger *logrus.Logger, filesURL string) *ProviderHandler {
	return &ProviderHandler{Svc: svc, Logger: logger, view: newPresenter(filesURL)}
}

// List GET /api/providers
func (h *ProviderHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.users(out), "providers", nil)
}

// Available GET /api/providers/:id/available?date=YYYY-MM-DD
func (h *ProviderHandler) Available(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	slots, err := h.Svc.Available(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, slots, "availability", nil)
}
