/*
Package tariff provides the call pricing core.

PURPOSE:
  Prices a single telephone call against a daily peak/off-peak rate
  schedule and a long-call discount. The package has no I/O and no
  shared mutable state; every value is immutable after construction.

KEY CONCEPTS IN THIS FILE (money.go):
  - Money: an exact decimal amount, rendered with two fractional digits

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, never float64
  2. Immutability: arithmetic returns new values
  3. One capability: Pricer turns a Call into Money

USAGE:
  engine := tariff.NewIntervalEngine(tariff.DefaultTariff())
  price := engine.Price(call)
  fmt.Println(price) // "6.60"

SEE ALSO:
  - engine.go: IntervalEngine, the production pricer
  - reference.go: MinuteEngine, the per-minute oracle
  - schedule.go: RateSchedule and DiscountPolicy
*/
package tariff

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Exact decimal amount
// =============================================================================

// Money is an exact decimal quantity. The zero value is zero.
type Money struct {
	Value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{Value: decimal.Zero}

// NewMoney wraps a decimal.
func NewMoney(d decimal.Decimal) Money { return Money{Value: d} }

// ParseMoney parses an exact decimal literal such as "1.00".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid. Panics otherwise.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic("tariff: invalid money literal " + s)
	}
	return m
}

func (m Money) Add(o Money) Money        { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money        { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Times(n int64) Money      { return Money{Value: m.Value.Mul(decimal.NewFromInt(n))} }
func (m Money) Equal(o Money) bool       { return m.Value.Equal(o.Value) }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) IsNegative() bool         { return m.Value.IsNegative() }
func (m Money) GreaterThan(o Money) bool { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool    { return m.Value.LessThan(o.Value) }

// String renders the amount with exactly two fractional digits.
func (m Money) String() string { return m.Value.StringFixed(2) }

// MarshalText renders the two-digit form, so JSON encodes money as "6.60".
func (m Money) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText accepts any decimal literal.
func (m *Money) UnmarshalText(b []byte) error {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Value = d
	return nil
}
