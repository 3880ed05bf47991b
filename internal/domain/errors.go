package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNoDuration      = errors.New("no duration found in step text")
	ErrUnparseable     = errors.New("could not understand duration")
	ErrUpstream        = errors.New("upstream returned unusable output")
)

// ValidationError rejects malformed input to a mutating operation before
// any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
