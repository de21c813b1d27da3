package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every ValidationError.
	ErrInvalidInput = errors.New("invalid calculation input")
	// ErrUnknownProductType is returned when a product type tag is not supported.
	ErrUnknownProductType = errors.New("unknown product type")
)

// ValidationError reports which field of which calculation was rejected.
type ValidationError struct {
	Type   ProductType
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: field %q %s", e.Type, e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(t ProductType, field, reason string) error {
	return &ValidationError{Type: t, Field: field, Reason: reason}
}
