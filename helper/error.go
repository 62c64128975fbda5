package helper

import "fmt"

// Error carries the step that failed alongside the original error.
type Error struct {
	Trace    string
	Original error
}

// NewError wraps err with the name of the operation that produced it.
// A nil err yields nil.
func NewError(trace string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Trace:    trace,
		Original: err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Trace, e.Original)
}

// Unwrap returns the wrapped error so errors.Is and errors.As see through the trace.
func (e *Error) Unwrap() error {
	return e.Original
}
