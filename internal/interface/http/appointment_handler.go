package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
	"github.com/oksasatya/go-barber/pkg/response"
)

type AppointmentHandler struct {
	Svc    *app.AppointmentService
	Logger *logrus.Logger
	view   presenter
}

func NewAppointmentHandler(svc *app.AppointmentService, logger *logrus.Logger, filesURL string) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger, view: newPresenter(filesURL)}
}

type createAppointmentRequest struct {
	ProviderID string      `json:"provider_id" binding:"required"`
	Date       bookingTime `json:"date"`
	ClientID   string      `json:"client_id"`
}

// zone-less layouts are read in the server location
var localDateLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

// bookingTime accepts RFC3339 as well as "2006-01-02T15:04[:05]" without an offset.
type bookingTime struct {
	time.Time
}

func (b *bookingTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		b.Time = t
		return nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			b.Time = t
			return nil
		}
	}
	return fmt.Errorf("date %q is not an ISO 8601 date-time", raw)
}

type pageQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// List GET /api/appointments?page=N
func (h *AppointmentHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeValidation(c, err)
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	out, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), q.Page)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	meta := response.PageMeta{Page: q.Page, PerPage: app.AppointmentsPageSize, Count: len(out)}
	response.OK(c, http.StatusOK, h.view.appointments(out), "appointments", meta)
}

// Create POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, err)
		return
	}
	if req.Date.IsZero() {
		response.Fail(c, http.StatusBadRequest, "validation fails", map[string]string{"date": "date is required"})
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), app.CreateAppointmentInput{
		ProviderID: req.ProviderID,
		Date:       req.Date.Time,
		ClientID:   req.ClientID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.appointment(a), "appointment created", nil)
}

// Cancel DELETE /api/appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	a, err := h.Svc.Cancel(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.appointment(a), "appointment canceled", nil)
}

// Schedule GET /api/schedule?date=YYYY-MM-DD
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.Schedule(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), day)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.appointments(out), "schedule", nil)
}

// dayParam reads ?date= as YYYY-MM-DD or a unix timestamp in milliseconds.
// A missing date means today. On a bad value it writes the 400 and returns false.
func dayParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "validation fails", map[string]string{"date": "must match the format YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
