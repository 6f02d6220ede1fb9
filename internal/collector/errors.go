package collector

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized collector failure taxonomy.
type ErrorCategory string

const (
	// ErrorTimeout indicates the collector took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the collector returned a body we could not decode
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorOutage indicates the collector could not be reached or failed the request
	ErrorOutage ErrorCategory = "outage"
)

// Error wraps collector failures with a category.
type Error struct {
	Category   ErrorCategory
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("collector [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("collector [%s]: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(category ErrorCategory, message string, underlying error) *Error {
	return &Error{Category: category, Message: message, Underlying: underlying}
}

// CategoryOf extracts the category from err, or "" when err is not a collector error.
func CategoryOf(err error) ErrorCategory {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
