package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var ErrNotFound = errors.New("not found")

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SplitError wraps a failure while processing one split
type SplitError struct {
	Split string
	Err   error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("split %s: %v", e.Split, e.Err)
}

func (e *SplitError) Unwrap() error {
	return e.Err
}
