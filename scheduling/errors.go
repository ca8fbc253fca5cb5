package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a session or room id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a lifecycle operation is
	// attempted from a status that forbids it.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError marks malformed input to a core operation, e.g. a time
// window whose end does not come after its start. It is never retried here;
// retry is a caller decision.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalidWindow() *ValidationError {
	return &ValidationError{Field: "end_time", Msg: "must be after start_time"}
}
