/*
parser.go - Call log parsing

PURPOSE:
  Reads the plain-text call log into validated tariff.Call values.

FORMAT:
  One call per line, three comma-separated fields:

    420774577453,13-01-2020 18:10:15,13-01-2020 18:12:57
    ^ number     ^ start              ^ end

  - Timestamps use dd-MM-yyyy HH:mm:ss exactly and carry no zone
  - Trailing empty fields are ignored: "number,start,end," is valid
  - Lines split on \n or \r\n; surrounding whitespace is trimmed
  - Blank lines are skipped; a blank log yields no calls
  - Any malformed line rejects the whole log with a *ParseError

SEE ALSO:
  - errors.go: ParseError, ErrFieldCount, ErrInvalidTimestamp
  - calculator.go: consumes the parsed calls
*/
package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/call-billing/tariff"
)

// TimestampLayout is the log's timestamp format (dd-MM-yyyy HH:mm:ss).
const TimestampLayout = "02-01-2006 15:04:05"

const fieldsPerRecord = 3

// LogParser turns a call log into calls.
type LogParser interface {
	Parse(log string) ([]tariff.Call, error)
}

// CSVParser parses the comma-separated log format.
type CSVParser struct{}

// NewCSVParser creates a CSV log parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse returns the calls in log order.
func (p *CSVParser) Parse(log string) ([]tariff.Call, error) {
	if strings.TrimSpace(log) == "" {
		return nil, nil
	}

	var calls []tariff.Call
	for i, raw := range strings.Split(log, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}

		call, err := p.parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		calls = append(calls, call)
	}
	return calls, nil
}

func (p *CSVParser) parseLine(line string) (tariff.Call, error) {
	fields := dropTrailingEmpty(strings.Split(line, ","))
	if len(fields) != fieldsPerRecord {
		return tariff.Call{}, fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, fieldsPerRecord, len(fields))
	}

	number, err := tariff.ParsePhoneNumber(strings.TrimSpace(fields[0]))
	if err != nil {
		return tariff.Call{}, err
	}
	start, err := ParseTimestamp(strings.TrimSpace(fields[1]))
	if err != nil {
		return tariff.Call{}, err
	}
	end, err := ParseTimestamp(strings.TrimSpace(fields[2]))
	if err != nil {
		return tariff.Call{}, err
	}

	return tariff.NewCall(number, start, end)
}

// dropTrailingEmpty removes empty fields at the end of a record, so
// "number,start,end," is still three fields.
func dropTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// ParseTimestamp parses a log timestamp as a zone-less wall-clock time.
// The input must match the layout exactly: two-digit fields and no
// fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil || t.Format(TimestampLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q, expected dd-MM-yyyy HH:mm:ss", ErrInvalidTimestamp, s)
	}
	return t, nil
}
