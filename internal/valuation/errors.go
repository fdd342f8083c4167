package valuation

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter is wrapped by every filter validation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// MissingStatError reports a value computation on a record that lacks one of its inputs.
// Records produced by the loader never trigger it.
type MissingStatError struct {
	Player string
	Field  string
}

func (e *MissingStatError) Error() string {
	if e.Player == "" {
		return fmt.Sprintf("missing stat %q", e.Field)
	}
	return fmt.Sprintf("missing stat %q for %s", e.Field, e.Player)
}

// AsMissingStatError attempts to unwrap an error into a MissingStatError.
func AsMissingStatError(err error) (*MissingStatError, bool) {
	var msErr *MissingStatError
	if errors.As(err, &msErr) {
		return msErr, true
	}
	return nil, false
}

func invalidFilter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
}
