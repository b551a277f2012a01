package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/pkg/helpers"
	"github.com/oksasatya/go-barber/pkg/response"
	"github.com/oksasatya/go-barber/pkg/validation"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{app.ErrInvalidCredentials, http.StatusUnauthorized},
	{app.ErrPasswordMismatch, http.StatusBadRequest},
	{app.ErrUserExists, http.StatusBadRequest},
	{app.ErrUserNotFound, http.StatusNotFound},
	{app.ErrFileNotFound, http.StatusNotFound},
	{app.ErrStorageNotConfigured, http.StatusServiceUnavailable},

	{app.ErrInvalidProvider, http.StatusUnauthorized},
	{app.ErrPastDate, http.StatusBadRequest},
	{app.ErrSelfBooking, http.StatusBadRequest},
	{app.ErrSlotTaken, http.StatusBadRequest},
	{app.ErrAppointmentNotFound, http.StatusNotFound},
	{app.ErrNotOwner, http.StatusUnauthorized},
	{app.ErrCancellationWindowExpired, http.StatusUnauthorized},

	{app.ErrNotProvider, http.StatusUnauthorized},
	{app.ErrNotificationNotFound, http.StatusNotFound},

	{app.ErrTokenMissing, http.StatusUnauthorized},
	{app.ErrTokenInvalid, http.StatusUnauthorized},
}

// statusFor maps a service error to its HTTP status; 0 means unexpected.
func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return 0
}

// writeError renders err with its mapped status. Unmapped errors become a logged 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	if status := statusFor(err); status != 0 {
		response.Fail(c, status, err.Error(), nil)
		return
	}
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
}

func writeValidation(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, "validation fails", validation.ToDetails(err))
}
