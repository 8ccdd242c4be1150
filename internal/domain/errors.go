package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited   = errors.New("too many requests, please try again later")
	ErrRouteNotFound = errors.New("route does not exist")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
