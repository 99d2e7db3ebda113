package domain

import "fmt"

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeGenerationUnavailable = "GENERATION_UNAVAILABLE"
	ErrCodeMalformedOutput       = "MALFORMED_OUTPUT"
	ErrCodeTotalFailure          = "TOTAL_FAILURE"
)

// Error constructors

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(msg string) error {
	return &DomainError{
		Code:    ErrCodeForbidden,
		Message: msg,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(msg string) error {
	return &DomainError{
		Code:    ErrCodeConflict,
		Message: msg,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

// NewGenerationUnavailableError wraps an LLM transport failure (network,
// timeout, quota). Distinct from MALFORMED_OUTPUT so callers can pick
// different retry and user-messaging strategies.
func NewGenerationUnavailableError(err error) error {
	return &DomainError{
		Code:    ErrCodeGenerationUnavailable,
		Message: "Content generation is temporarily unavailable",
		Err:     err,
	}
}

// NewMalformedOutputError wraps a failure to extract or validate the model's
// structured output. The model responded, but with garbage.
func NewMalformedOutputError(msg string, err error) error {
	return &DomainError{
		Code:    ErrCodeMalformedOutput,
		Message: msg,
		Err:     err,
	}
}

// NewTotalFailureError is raised when every requested channel failed to
// generate content.
func NewTotalFailureError() error {
	return &DomainError{
		Code:    ErrCodeTotalFailure,
		Message: "Failed to generate content for any channel",
	}
}

// Helper functions to check error types

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeValidation
	}
	return false
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeUnauthorized
	}
	return false
}

// IsForbidden checks if the error is a forbidden error
func IsForbidden(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeForbidden
	}
	return false
}

// IsGenerationUnavailable checks if the error is an LLM availability error
func IsGenerationUnavailable(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeGenerationUnavailable
	}
	return false
}

// IsMalformedOutput checks if the error is a malformed model output error
func IsMalformedOutput(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeMalformedOutput
	}
	return false
}

// IsTotalFailure checks if the error is a total generation failure
func IsTotalFailure(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeTotalFailure
	}
	return false
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ErrCodeInternal
}
