package report

import "fmt"

// Error wraps any failure raised while generating file summaries. It is the
// only error kind that crosses the package boundary; the original cause stays
// reachable through Unwrap for diagnostics.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to generate file summaries: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{cause: err}
}
