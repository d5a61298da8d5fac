package shared

import (
	"fmt"
)

// Error codes for the failure kinds surfaced by repositories and services.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeTransientStorage = "TRANSIENT_STORAGE"
)

// DomainError represents a typed failure raised by the domain or persistence layer.
// Two DomainErrors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any DomainError carrying the same code
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause attaches the underlying error and returns the receiver
func (e *DomainError) WithCause(cause error) *DomainError {
	e.cause = cause
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports malformed, missing or out-of-range input for a field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError reports an unknown id for the given entity kind
func NewNotFoundError(entity string, id int64) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", entity, id),
	}
}

// NewConflictError reports an operation rejected because of existing related state
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewTransientStorageError wraps a connection or timeout failure. Callers may retry.
func NewTransientStorageError(cause error) *DomainError {
	return &DomainError{
		Code:    CodeTransientStorage,
		Message: "storage temporarily unavailable",
		cause:   cause,
	}
}

// Sentinel errors, usable as errors.Is targets
var (
	ErrValidation       = NewDomainError(CodeValidation, "Invalid input")
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict         = NewDomainError(CodeConflict, "Resource conflict")
	ErrTransientStorage = NewDomainError(CodeTransientStorage, "Storage temporarily unavailable")
)
