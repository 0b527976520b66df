package palette

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is matched (errors.Is) by every record validation failure.
var ErrInvalidRecord = errors.New("invalid palette record")

// RecordError reports which record and field failed validation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type RecordError struct {
	Index int
	Field string
	cause error
}

func (e *RecordError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %d: field %q: %v", ErrInvalidRecord, e.Index, e.Field, e.cause)
	}
	return fmt.Sprintf("%s %d: field %q", ErrInvalidRecord, e.Index, e.Field)
}

func (e *RecordError) Unwrap() error { return e.cause }

// Is reports ErrInvalidRecord as a match.
func (e *RecordError) Is(target error) bool { return target == ErrInvalidRecord }
