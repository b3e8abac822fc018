package apperrors

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventFullyBooked = errors.New("event is fully booked")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
)
