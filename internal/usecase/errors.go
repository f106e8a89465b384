package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrProvidersExhausted    = errors.New("all providers exhausted")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
