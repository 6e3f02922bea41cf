package reservation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidDate   = errors.New("invalid date")
	ErrPhoneRequired = errors.New("phone number with digits is required")
)

// ValidationError lists every rejected field of a submission. Nothing is
// appended when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PartialAppendError reports a multi-day submission that failed midway.
// Days listed in Appended stay persisted.
type PartialAppendError struct {
	Appended   []string
	FailedDate string
	Err        error
}

func (e *PartialAppendError) Error() string {
	return fmt.Sprintf("append failed on %s after %d day(s): %v", e.FailedDate, len(e.Appended), e.Err)
}

func (e *PartialAppendError) Unwrap() error { return e.Err }
