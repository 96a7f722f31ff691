package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pooling engine. Per the engine's error model,
// bad per-study data is dropped rather than surfaced as an error; these
// sentinels cover the few cases callers must branch on explicitly.
var (
	// ErrConversionNotSupported signals an effect-size conversion pair the
	// engine does not implement. Callers skip the conversion; it never
	// aborts a pooling run.
	ErrConversionNotSupported = errors.New("effect size conversion not supported")

	// ErrNonPositiveEffect signals a log transform requested for a ratio
	// value <= 0, where the logarithm is undefined.
	ErrNonPositiveEffect = errors.New("effect size must be positive for log transform")

	// ErrMissingBaselineRisk signals a conversion that needs a baseline
	// risk which the caller did not supply.
	ErrMissingBaselineRisk = errors.New("baseline risk required for conversion")

	// ErrInvalidPoolingMethod signals an unrecognized pooling method in
	// configuration.
	ErrInvalidPoolingMethod = errors.New("invalid pooling method")
)

// ValidationError reports a single invalid field on an input record. Used by
// the CLI boundary; inside the engine invalid records are silently dropped.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
