package prayer

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTime matches every *MalformedTimeError through errors.Is.
	ErrMalformedTime = errors.New("malformed clock time")

	// ErrInvalidSchedule matches every *InvalidScheduleError through errors.Is.
	ErrInvalidSchedule = errors.New("invalid prayer schedule")

	// ErrUnknownPrayer is returned by ParseName for labels outside the fixed six.
	ErrUnknownPrayer = errors.New("unknown prayer name")
)

// MalformedTimeError reports a clock time that does not parse into a valid
// hour, minute and meridiem.
type MalformedTimeError struct {
	Input  string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("malformed clock time: %s", e.Reason)
	}
	return fmt.Sprintf("malformed clock time %q: %s", e.Input, e.Reason)
}

func (e *MalformedTimeError) Is(target error) bool {
	return target == ErrMalformedTime
}

// InvalidScheduleError reports a table that is not exactly the six named
// prayers, or one that goes backwards in time when strict ordering is on.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return "invalid prayer schedule: " + e.Reason
}

func (e *InvalidScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

func malformed(input, format string, args ...any) error {
	return &MalformedTimeError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

func invalidSchedule(format string, args ...any) error {
	return &InvalidScheduleError{Reason: fmt.Sprintf(format, args...)}
}
