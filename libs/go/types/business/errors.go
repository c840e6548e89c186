package business

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned when tax computation inputs are structurally invalid.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid financial data: " + strings.Join(parts, "; ")
}

// IncompleteInputError lists every mandatory accounts field that is missing.
type IncompleteInputError struct {
	Missing []string
}

func (e *IncompleteInputError) Error() string {
	return "incomplete accounts input, missing: " + strings.Join(e.Missing, ", ")
}

// StructuralValidationError is returned when a document fails validation.
// Result carries every error and warning that was found.
type StructuralValidationError struct {
	Result *ValidationResult
}

func (e *StructuralValidationError) Error() string {
	if e.Result == nil {
		return "document failed validation"
	}
	return fmt.Sprintf("document failed validation with %d error(s): %s", len(e.Result.Errors), e.Result.Summary())
}

// IntegrityMarkComputationError is returned when the IRmark cannot be derived.
// A submission must never be sent without one.
type IntegrityMarkComputationError struct {
	Stage string
	Err   error
}

func (e *IntegrityMarkComputationError) Error() string {
	return fmt.Sprintf("irmark computation failed during %s: %v", e.Stage, e.Err)
}

func (e *IntegrityMarkComputationError) Unwrap() error { return e.Err }

// GatewayHTTPError covers transport failures, non-2xx responses and
// unparsable bodies. These are safe to retry.
type GatewayHTTPError struct {
	Gateway    Gateway
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayHTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s gateway request failed: %v", e.Gateway, e.Err)
	}
	return fmt.Sprintf("%s gateway returned HTTP %d", e.Gateway, e.StatusCode)
}

func (e *GatewayHTTPError) Unwrap() error { return e.Err }

// Retryable is always true for transport level failures.
func (e *GatewayHTTPError) Retryable() bool { return true }

// GatewayBusinessRejection is returned when the gateway accepted the request
// but rejected its content. Resubmitting unchanged will fail again.
type GatewayBusinessRejection struct {
	Gateway Gateway
	Result  *SubmissionResult
}

func (e *GatewayBusinessRejection) Error() string {
	if !e.Result.HasErrors() {
		return fmt.Sprintf("%s rejected the submission", e.Gateway)
	}
	first := e.Result.Errors[0]
	return fmt.Sprintf("%s rejected the submission: [%s] %s (%d error(s))", e.Gateway, first.Code, first.Message, len(e.Result.Errors))
}

// IsRetryable reports whether err is a transient gateway failure
func IsRetryable(err error) bool {
	var httpErr *GatewayHTTPError
	return errors.As(err, &httpErr) && httpErr.Retryable()
}

// IsBusinessRejection reports whether err is a terminal content rejection
func IsBusinessRejection(err error) bool {
	var rej *GatewayBusinessRejection
	return errors.As(err, &rej)
}

// IsInputError reports whether err was caused by the caller's input
func IsInputError(err error) bool {
	var (
		validationErr *ValidationError
		incompleteErr *IncompleteInputError
		structuralErr *StructuralValidationError
	)
	return errors.As(err, &validationErr) || errors.As(err, &incompleteErr) || errors.As(err, &structuralErr)
}
