package domain

import "errors"

// Sentinel errors shared by the store, the storage backends and the HTTP layer.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
)
