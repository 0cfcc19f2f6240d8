package hostel

import "errors"

var (
	ErrHostelNotFound = errors.New("hostel not found")
	ErrForbidden      = errors.New("forbidden")
	ErrOwnerNotFound  = errors.New("owner not found")
)
