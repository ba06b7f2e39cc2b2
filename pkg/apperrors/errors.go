package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected request parameter. Resolvers return it
// for missing, out-of-range, or mutually exclusive parameters; handlers map
// it to HTTP 400. Every other resolver error maps to HTTP 500.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(param, message string) *ValidationError {
	return &ValidationError{Param: param, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
