package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("password does not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrFileNotFound       = errors.New("file not found")

	ErrInvalidProvider           = errors.New("you can only create appointments with providers")
	ErrPastDate                  = errors.New("past dates are not permitted")
	ErrSelfBooking               = errors.New("user can not be equal to the provider")
	ErrSlotTaken                 = errors.New("appointment date is not available")
	ErrAppointmentNotFound       = errors.New("appointment not found")
	ErrNotOwner                  = errors.New("you don't have permission to cancel this appointment")
	ErrCancellationWindowExpired = errors.New("you can only cancel appointments 2 hours in advance")

	ErrNotProvider          = errors.New("only providers can access this resource")
	ErrNotificationNotFound = errors.New("notification not found")
)

var (
	ErrTokenMissing = errors.New("token not provided")
	ErrTokenInvalid = errors.New("token invalid")
)
