package business

import (
	"fmt"
	"strings"
)

// ValidationIssue is one finding from the accounts validator
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (i ValidationIssue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Code, i.Message, i.Field)
}

// ValidationResult collects blocking errors and advisory warnings.
// IsValid is true exactly when Errors is empty.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}
}

// AddError records a blocking issue and marks the result invalid
func (r *ValidationResult) AddError(code, field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
	r.IsValid = false
}

// AddWarning records an advisory issue
func (r *ValidationResult) AddWarning(code, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrorCode reports whether any error carries the given code
func (r *ValidationResult) HasErrorCode(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// HasWarningCode reports whether any warning carries the given code
func (r *ValidationResult) HasWarningCode(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Summary joins the error messages into a single line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

// FieldViolation names a single input field that failed validation
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Message
}
