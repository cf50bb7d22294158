package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and handlers. Services wrap them with
// context via fmt.Errorf("...: %w", err); handlers map them to status codes.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrQuotaExceeded = fmt.Errorf("todo quota exceeded: %w", ErrForbidden)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
