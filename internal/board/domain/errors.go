package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("not permitted")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrNotVerified       = errors.New("user is not verified")
	ErrBlocked           = errors.New("user is blocked")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	ErrRepository        = errors.New("repository error")
)
