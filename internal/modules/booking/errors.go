package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrHostelNotFound    = errors.New("hostel not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNoAvailability    = errors.New("no rooms available")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FieldError names the request field that failed a business rule.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Tag
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
