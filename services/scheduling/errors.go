package scheduling

import "errors"

// ErrCoachNotFound is returned when the coach referenced by an availability
// query does not exist.
var ErrCoachNotFound = errors.New("coach not found")

// ValidationError reports a date outside the enrollment's bookable range or
// week slice. Details carries the fields the caller needs to react
// (validDateRange, expectedWeek, actualWeek).
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string, details map[string]any) error {
	return &ValidationError{Message: message, Details: details}
}
