/*
engine.go - Batched call pricing

PURPOSE:
  IntervalEngine prices a call in time proportional to the number of
  peak-window crossings, not the number of minutes. A call of ten million
  minutes costs a few thousand loop iterations.

ALGORITHM:
  1. totalMinutes = call.BilledMinutes(); zero prices to zero.
  2. Split the call at minute min(total, Threshold). The minutes before
     it pay the base rate, the rest pay base rate minus Deduction.
  3. Price each part by walking a two-state machine from the clock
     offset of its first minute:

       in-window:  batch until PeakEnd today
       out-window: batch until PeakStart (today if before it,
                   otherwise tomorrow)

     Each batch is min(remaining, minutes until the next transition) and
     contributes batch * (baseRate - deduction), where deduction is
     zero for the first part.
  4. Return the sum of both parts.

  "Minutes until" is a ceiling: a pointer at 15:59:30 has ONE more peak
  minute (15:59:30), the next one starts at 16:00:30 off-peak. This keeps
  the batches identical to classifying each minute's start instant.

  The pointer is a clock offset modulo 24h, so arbitrarily long calls
  never overflow time.Duration.

EQUIVALENCE:
  For every call, IntervalEngine.Price == MinuteEngine.Price to the last
  digit. The tests check this across window, day and threshold boundaries.

SEE ALSO:
  - reference.go: MinuteEngine
  - schedule.go: RateSchedule, DiscountPolicy
*/
package tariff

import (
	"time"
)

// Pricer prices a single call. Implementations are pure and safe for
// concurrent use.
type Pricer interface {
	Price(call Call) Money
}

// =============================================================================
// INTERVAL ENGINE
// =============================================================================

// IntervalEngine is the production pricer.
type IntervalEngine struct {
	Tariff Tariff
}

// NewIntervalEngine creates an engine for the given tariff.
func NewIntervalEngine(t Tariff) *IntervalEngine {
	return &IntervalEngine{Tariff: t}
}

// Price returns the exact price of the call.
func (e *IntervalEngine) Price(call Call) Money {
	total := call.BilledMinutes()
	if total == 0 {
		return Zero
	}

	standard := e.Tariff.Discount.Threshold
	if standard < 0 {
		standard = 0
	}
	if standard > total {
		standard = total
	}

	price, clock, _ := e.walk(ClockOf(call.Start), standard, Zero)
	discounted, _, _ := e.walk(clock, total-standard, e.Tariff.Discount.Deduction)
	return price.Add(discounted)
}

// walk prices minutes starting at clock, each at its base rate less
// deduction. It returns the price, the clock after the last minute and
// the number of batches walked.
func (e *IntervalEngine) walk(clock time.Duration, minutes int64, deduction Money) (Money, time.Duration, int) {
	schedule := e.Tariff.Schedule

	price := Zero
	batches := 0
	for minutes > 0 {
		peak := schedule.peakAt(clock)

		batch := e.minutesUntilTransition(clock, peak)
		if batch > minutes {
			batch = minutes
		}

		rate := schedule.rate(peak).Sub(deduction)
		price = price.Add(rate.Times(batch))

		clock = advance(clock, batch)
		minutes -= batch
		batches++
	}
	return price, clock, batches
}

// minutesUntilTransition counts the minutes, starting at clock, whose
// start instant shares clock's classification. Always at least one.
func (e *IntervalEngine) minutesUntilTransition(clock time.Duration, peak bool) int64 {
	s := e.Tariff.Schedule
	switch {
	case peak:
		return ceilMinutes(s.PeakEnd - clock)
	case clock < s.PeakStart:
		return ceilMinutes(s.PeakStart - clock)
	default:
		// At or after PeakEnd: through midnight to tomorrow's PeakStart.
		return ceilMinutes(Day - clock + s.PeakStart)
	}
}

func ceilMinutes(d time.Duration) int64 {
	return int64((d + time.Minute - 1) / time.Minute)
}

// advance moves a clock offset forward by n minutes, wrapping at midnight.
func advance(clock time.Duration, minutes int64) time.Duration {
	step := time.Duration(minutes%int64(Day/time.Minute)) * time.Minute
	return (clock + step) % Day
}
