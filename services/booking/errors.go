package booking

import "fmt"

// Error codes; every failed precondition maps to exactly one so callers can
// react (pick another slot, wait, pick another date).
const (
	CodeNotFound   = "notFound"
	CodeForbidden  = "forbidden"
	CodeValidation = "validationError"
	CodeConflict   = "conflict"
)

// ServiceError is the error type surfaced by the booking orchestrator's
// public operations.
type ServiceError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFoundError reports a missing session/enrollment/coach/ground/program.
func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

// NewForbiddenError reports a caller mutating a resource they do not own.
func NewForbiddenError(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

// NewValidationError reports a missing field or failed business rule.
func NewValidationError(msg string, details map[string]any) error {
	return &ServiceError{Code: CodeValidation, Message: msg, Details: details}
}

// NewConflictError reports a compute-then-commit race loss: the slot became
// unavailable between check and write.
func NewConflictError(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}
