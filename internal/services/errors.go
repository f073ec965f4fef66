package services

import (
	"errors"
	"fmt"
)

// ErrOracleUnavailable marks a failed oracle call (timeout, quota, malformed
// response). It is never written to the cache; batch operations record it per
// resume and keep going.
var ErrOracleUnavailable = errors.New("scoring oracle unavailable")

// ValidationError rejects bad input synchronously, before any state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
