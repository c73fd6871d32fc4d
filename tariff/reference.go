package tariff

import (
	"math"
	"time"
)

// MaxReferenceMinutes is the longest call MinuteEngine can price. Minute
// offsets beyond it overflow time.Duration.
const MaxReferenceMinutes = int64(math.MaxInt64 / int64(time.Minute))

// =============================================================================
// MINUTE ENGINE - Per-minute reference pricer
// =============================================================================

// MinuteEngine rates every billed minute independently. It is linear in
// call duration and exists to verify IntervalEngine; do not use it on
// untrusted call lengths. Calls over MaxReferenceMinutes are mispriced.
type MinuteEngine struct {
	Tariff Tariff
}

// NewMinuteEngine creates a reference engine for the given tariff.
func NewMinuteEngine(t Tariff) *MinuteEngine {
	return &MinuteEngine{Tariff: t}
}

// Price sums RateAt and the discount over each billed minute.
func (e *MinuteEngine) Price(call Call) Money {
	total := Zero
	minutes := call.BilledMinutes()
	for i := int64(0); i < minutes; i++ {
		rate := e.Tariff.Schedule.RateAt(call.MinuteStart(i))
		total = total.Add(e.Tariff.Discount.Apply(rate, i))
	}
	return total
}

var (
	_ Pricer = (*IntervalEngine)(nil)
	_ Pricer = (*MinuteEngine)(nil)
)
