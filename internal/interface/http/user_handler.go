package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
	"github.com/oksasatya/go-barber/pkg/response"
)

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
	view   presenter
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger, filesURL string) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, view: newPresenter(filesURL)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Provider bool   `json:"provider"`
}

type updateProfileRequest struct {
	Name            string  `json:"name" binding:"omitempty,max=255"`
	Email           string  `json:"email" binding:"omitempty,email"`
	OldPassword     string  `json:"old_password" binding:"omitempty,pwd"`
	Password        string  `json:"password" binding:"omitempty,pwd"`
	ConfirmPassword string  `json:"confirm_password"`
	AvatarID        *string `json:"avatar_id"`
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Provider: req.Provider,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.user(u), "user created", nil)
}

// UpdateProfile PUT /api/users
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), app.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		OldPassword:     req.OldPassword,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AvatarID:        req.AvatarID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.user(u), "profile updated", nil)
}
