package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/pkg/response"
)

type SessionHandler struct {
	Svc    *app.SessionService
	Logger *logrus.Logger
	view   presenter
}

func NewSessionHandler(svc *app.SessionService, logger *logrus.Logger, filesURL string) *SessionHandler {
	return &SessionHandler{Svc: svc, Logger: logger, view: newPresenter(filesURL)}
}

type sessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User      *userJSON `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create POST /api/sessions. Unknown email and wrong password both answer 400.
func (h *SessionHandler) Create(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, err)
		return
	}
	s, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, app.ErrUserNotFound) || errors.Is(err, app.ErrInvalidCredentials) {
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	u := h.view.user(s.User)
	u.Avatar = nil
	response.OK(c, http.StatusOK, sessionResponse{User: u, Token: s.Token, ExpiresAt: s.ExpiresAt}, "session created", nil)
}
