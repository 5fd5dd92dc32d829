/*
errors.go - Validation error taxonomy for the calculation engine

PURPOSE:
  All calculator errors in one place. The engine has a single error kind:
  validation of inputs before any computation begins. There are no partial
  results and no retryable failures - callers correct the input and invoke
  again.

USAGE:
  Callers branch on the taxonomy with errors.Is / errors.As:

    if finance.IsValidation(err) {
        // 400-class problem: report the field to the user
    }

SEE ALSO:
  - tuition/fees.go: raises UnknownGradeError / UnknownDiscountError
  - api/handlers.go: maps validation errors to HTTP 400
*/
package finance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of the validation taxonomy. Every input
	// error unwraps to it.
	ErrValidation = errors.New("invalid input")

	// ErrUnknownGradeLevel is returned when a grade level is not present
	// in the fee schedule.
	ErrUnknownGradeLevel = errors.New("unknown grade level")

	// ErrUnknownDiscountPolicy is returned when a discount policy key is
	// not present in the policy set.
	ErrUnknownDiscountPolicy = errors.New("unknown discount policy")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending field
// =============================================================================

// ValidationError reports a single invalid input field with a
// human-readable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for a field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnknownGradeError reports a fee-schedule lookup miss.
type UnknownGradeError struct {
	GradeLevel string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("grade level %q is not in the fee schedule", e.GradeLevel)
}

func (e *UnknownGradeError) Unwrap() error { return ErrUnknownGradeLevel }

// UnknownDiscountError reports a discount-policy lookup miss.
type UnknownDiscountError struct {
	Key string
}

func (e *UnknownDiscountError) Error() string {
	return fmt.Sprintf("discount policy %q is not defined", e.Key)
}

func (e *UnknownDiscountError) Unwrap() error { return ErrUnknownDiscountPolicy }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownGradeLevel) ||
		errors.Is(err, ErrUnknownDiscountPolicy)
}
