/*
errors.go - Construction errors for tariff values

PURPOSE:
  Pricing itself never fails. Errors only come from building the values
  that pricing consumes: phone numbers, calls and rate windows. Callers
  reject the offending record; nothing here is retried.

USAGE:
  if errors.Is(err, tariff.ErrEndBeforeStart) {
      // reject the record
  }

SEE ALSO:
  - call.go: NewCall, ParsePhoneNumber
  - schedule.go: NewRateSchedule
  - billing/errors.go: parser errors wrapping these
*/
package tariff

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPhoneNumber is returned for empty or non-digit numbers.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrEndBeforeStart is returned when a call ends before it starts.
	ErrEndBeforeStart = errors.New("end time before start time")

	// ErrInvalidWindow is returned when a peak window lies outside one day.
	ErrInvalidWindow = errors.New("invalid peak window")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CallRangeError reports a call whose end precedes its start.
type CallRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *CallRangeError) Error() string {
	return fmt.Sprintf("call ends at %s before it starts at %s",
		e.End.Format(time.DateTime), e.Start.Format(time.DateTime))
}

func (e *CallRangeError) Unwrap() error {
	return ErrEndBeforeStart
}

// IsValidationError returns true if err rejects a malformed input value.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPhoneNumber) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidWindow)
}
