/*
errors.go - Call log errors

PURPOSE:
  Errors raised while turning a textual call log into tariff.Call values.
  A malformed record rejects the whole log; ParseError names the line.

USAGE:
  calls, err := parser.Parse(log)
  var perr *billing.ParseError
  if errors.As(err, &perr) {
      fmt.Println("bad line", perr.Line)
  }

SEE ALSO:
  - parser.go: CSVParser
  - tariff/errors.go: phone number and call range errors
*/
package billing

import (
	"errors"
	"fmt"

	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrFieldCount is returned when a record does not have exactly three fields.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrInvalidTimestamp is returned when a timestamp does not match the log layout.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ParseError reports the first rejected record of a log.
type ParseError struct {
	Line int    // 1-based line number in the log
	Text string // the trimmed record
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsClientError returns true if the error is due to a malformed log.
func IsClientError(err error) bool {
	return errors.Is(err, ErrFieldCount) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		tariff.IsValidationError(err)
}
