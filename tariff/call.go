package tariff

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// PHONE NUMBER
// =============================================================================

// PhoneNumber is a billing identifier made only of ASCII digits.
// Pricing never interprets it; the promotion compares numbers arithmetically.
type PhoneNumber string

// ParsePhoneNumber validates s as a digit string.
func ParsePhoneNumber(s string) (PhoneNumber, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPhoneNumber)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q must contain only digits", ErrInvalidPhoneNumber, s)
		}
	}
	return PhoneNumber(s), nil
}

// Compare orders numbers by magnitude: a longer digit string is larger,
// equal lengths compare lexicographically. Returns -1, 0 or +1.
func (p PhoneNumber) Compare(other PhoneNumber) int {
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return strings.Compare(string(p), string(other))
}

func (p PhoneNumber) String() string { return string(p) }

// =============================================================================
// CALL - Immutable call record
// =============================================================================

// Call is a single call from the log. Construct with NewCall.
type Call struct {
	Number PhoneNumber
	Start  time.Time
	End    time.Time
}

// NewCall builds a call, rejecting end before start.
//
// Both instants are re-anchored to UTC keeping their wall-clock fields.
// Log timestamps carry no zone, and a minute's rate depends only on the
// wall clock, so daylight-saving transitions must not shift minutes.
func NewCall(number PhoneNumber, start, end time.Time) (Call, error) {
	start, end = wallClock(start), wallClock(end)
	if end.Before(start) {
		return Call{}, &CallRangeError{Start: start, End: end}
	}
	return Call{Number: number, Start: start, End: end}, nil
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ElapsedSeconds returns the whole seconds between start and end.
// The sub-second remainder is dropped.
func (c Call) ElapsedSeconds() int64 {
	secs := c.End.Unix() - c.Start.Unix()
	if c.End.Nanosecond() < c.Start.Nanosecond() {
		secs--
	}
	return secs
}

// BilledMinutes rounds the elapsed seconds up to whole minutes.
// Any positive whole second bills at least one minute; zero bills zero.
func (c Call) BilledMinutes() int64 {
	return (c.ElapsedSeconds() + 59) / 60
}

// MinuteStart returns the instant at which the 0-indexed billed minute begins.
// index must stay below MaxReferenceMinutes.
func (c Call) MinuteStart(index int64) time.Time {
	return c.Start.Add(time.Duration(index) * time.Minute)
}
