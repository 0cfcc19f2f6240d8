package review

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrHostelNotFound  = errors.New("hostel not found")
	ErrAlreadyReviewed = errors.New("already reviewed")
)
