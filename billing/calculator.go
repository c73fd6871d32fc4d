/*
Package billing turns a call log into a bill.

PURPOSE:
  Wires the collaborators around the pricing core:
  parse the log, pick the free number, price and sum the rest.

FLOW:
  1. LogParser:     text -> []tariff.Call (rejects malformed records)
  2. FreePromotion: []tariff.Call -> free number (at most one)
  3. tariff.Pricer: tariff.Call -> tariff.Money, for every other call
  4. Sum into the bill total

  The pricer never sees calls to the free number.

USAGE:
  calc := billing.NewCalculator(logger)
  total, err := calc.Calculate(log)

  // Per-call breakdown
  stmt, err := calc.Statement(log)
  for _, line := range stmt.Lines { ... }

SEE ALSO:
  - parser.go: CSV log format
  - promotion.go: MostCalledNumber
  - tariff/engine.go: IntervalEngine
*/
package billing

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// STATEMENT - Priced log
// =============================================================================

// Line is one priced call of a statement.
type Line struct {
	Call    tariff.Call
	Minutes int64
	Price   tariff.Money // zero for free calls
	Free    bool
}

// Statement is the outcome of billing one log.
type Statement struct {
	ID         string
	Lines      []Line
	FreeNumber tariff.PhoneNumber // empty if no promotion applied
	Total      tariff.Money
	BilledAt   time.Time
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes bills from call logs.
type Calculator struct {
	Parser    LogParser
	Pricer    tariff.Pricer
	Promotion FreePromotion
	Logger    *zap.Logger
}

// NewCalculator creates a calculator with the default collaborators:
// CSV parser, interval engine on the default tariff and the most-called
// number promotion.
func NewCalculator(logger *zap.Logger) *Calculator {
	return NewCalculatorWithTariff(tariff.DefaultTariff(), logger)
}

// NewCalculatorWithTariff is NewCalculator with a custom tariff.
func NewCalculatorWithTariff(t tariff.Tariff, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		Parser:    NewCSVParser(),
		Pricer:    tariff.NewIntervalEngine(t),
		Promotion: MostCalledNumber{},
		Logger:    logger,
	}
}

// Calculate returns the bill total for a log.
func (c *Calculator) Calculate(log string) (tariff.Money, error) {
	stmt, err := c.Statement(log)
	if err != nil {
		return tariff.Zero, err
	}
	return stmt.Total, nil
}

// Statement prices every call of the log.
func (c *Calculator) Statement(log string) (*Statement, error) {
	calls, err := c.Parser.Parse(log)
	if err != nil {
		c.logger().Debug("call log rejected", zap.Error(err))
		return nil, err
	}
	return c.StatementFor(calls), nil
}

// StatementFor prices already parsed calls.
func (c *Calculator) StatementFor(calls []tariff.Call) *Statement {
	stmt := &Statement{
		ID:       uuid.NewString(),
		Lines:    make([]Line, 0, len(calls)),
		Total:    tariff.Zero,
		BilledAt: time.Now().UTC(),
	}

	free, hasFree := c.Promotion.FreeNumber(calls)
	if hasFree {
		stmt.FreeNumber = free
	}

	for _, call := range calls {
		line := Line{Call: call, Minutes: call.BilledMinutes(), Price: tariff.Zero}
		if hasFree && call.Number == free {
			line.Free = true
		} else {
			line.Price = c.Pricer.Price(call)
			stmt.Total = stmt.Total.Add(line.Price)
		}
		stmt.Lines = append(stmt.Lines, line)
	}

	c.logger().Debug("statement computed",
		zap.String("statement_id", stmt.ID),
		zap.Int("calls", len(calls)),
		zap.String("free_number", string(stmt.FreeNumber)),
		zap.Stringer("total", stmt.Total),
	)
	return stmt
}

func (c *Calculator) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
