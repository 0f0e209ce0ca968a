package schedule

import (
	"errors"
	"fmt"
)

// Sentinel causes for schedule validation failures.
var (
	ErrMalformedValue   = errors.New("tag value must have 7 pipe-separated segments")
	ErrTimezoneMismatch = errors.New("start and stop timezones differ")
	ErrUnknownTimezone  = errors.New("unknown timezone")
	ErrUnknownWeekday   = errors.New("unknown weekday")
	ErrInvalidSegment   = errors.New("invalid schedule segment")
	ErrEmptyPair        = errors.New("no start or stop tag")
)

// ValidationError reports a schedule that cannot be evaluated.
// It is scoped to a single instance and never fatal to a run.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a schedule validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
