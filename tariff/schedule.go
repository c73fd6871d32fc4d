/*
schedule.go - Rate schedule, discount policy and tariff

PURPOSE:
  Defines the two inputs every pricer consults:
  - RateSchedule: which base rate applies to a minute, by time of day
  - DiscountPolicy: which minutes of a call get the flat deduction

RATE WINDOW:
  The peak window is a half-open clock interval [PeakStart, PeakEnd)
  recurring every calendar day, with no notion of weekends or holidays.
  Only the minute's START instant is classified; a minute that begins at
  15:59:30 is a peak minute even though most of it falls after 16:00.

    00:00          08:00                 16:00          24:00
      |  off-peak    |        peak         |   off-peak   |
                     ^ inclusive           ^ exclusive

DISCOUNT:
  Minute positions are 0-indexed within a call. From position Threshold
  onward, Deduction is subtracted from whichever base rate applies. The
  subtraction has no floor at zero; tariffs that would go negative are
  rejected when they are built from configuration (see factory).

DEFAULTS:
  Peak 08:00:00-16:00:00 at 1.00, off-peak 0.50, 0.20 off from minute 5.

SEE ALSO:
  - engine.go: batched pricing over window crossings
  - factory/tariff.go: JSON tariff definitions
*/
package tariff

import (
	"fmt"
	"time"
)

// Day is the length of one recurring window cycle.
const Day = 24 * time.Hour

// ClockOf returns t's offset from its own midnight.
func ClockOf(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// =============================================================================
// RATE SCHEDULE
// =============================================================================

// RateSchedule is the daily peak window and its two per-minute rates.
type RateSchedule struct {
	PeakStart   time.Duration // offset from midnight, inclusive
	PeakEnd     time.Duration // offset from midnight, exclusive
	PeakRate    Money
	OffPeakRate Money
}

// NewRateSchedule validates the window bounds. PeakEnd may equal Day to
// keep the window open until midnight. PeakStart >= PeakEnd yields a
// window that never matches.
func NewRateSchedule(peakStart, peakEnd time.Duration, peakRate, offPeakRate Money) (RateSchedule, error) {
	if peakStart < 0 || peakStart >= Day {
		return RateSchedule{}, fmt.Errorf("%w: start %s outside [0, 24h)", ErrInvalidWindow, peakStart)
	}
	if peakEnd < 0 || peakEnd > Day {
		return RateSchedule{}, fmt.Errorf("%w: end %s outside [0, 24h]", ErrInvalidWindow, peakEnd)
	}
	return RateSchedule{
		PeakStart:   peakStart,
		PeakEnd:     peakEnd,
		PeakRate:    peakRate,
		OffPeakRate: offPeakRate,
	}, nil
}

// IsPeak classifies a minute by its start instant's time of day.
func (s RateSchedule) IsPeak(t time.Time) bool {
	return s.peakAt(ClockOf(t))
}

// RateAt returns the base rate of a minute starting at t.
func (s RateSchedule) RateAt(t time.Time) Money {
	return s.rate(s.peakAt(ClockOf(t)))
}

func (s RateSchedule) peakAt(clock time.Duration) bool {
	return clock >= s.PeakStart && clock < s.PeakEnd
}

func (s RateSchedule) rate(peak bool) Money {
	if peak {
		return s.PeakRate
	}
	return s.OffPeakRate
}

// =============================================================================
// DISCOUNT POLICY
// =============================================================================

// DiscountPolicy deducts a flat amount from every minute at or after Threshold.
type DiscountPolicy struct {
	Threshold int64 // 0-indexed minute position where the discount starts
	Deduction Money
}

// Applies reports whether the minute at position is discounted.
func (d DiscountPolicy) Applies(position int64) bool {
	return position >= d.Threshold
}

// Apply returns the rate charged for the minute at position. The rate
// class is unchanged; only the deduction is subtracted.
func (d DiscountPolicy) Apply(rate Money, position int64) Money {
	if d.Applies(position) {
		return rate.Sub(d.Deduction)
	}
	return rate
}

// =============================================================================
// TARIFF - Schedule plus discount
// =============================================================================

// Tariff bundles everything a pricer needs.
type Tariff struct {
	Schedule RateSchedule
	Discount DiscountPolicy
}

// DefaultTariff returns the standard tariff.
func DefaultTariff() Tariff {
	return Tariff{
		Schedule: RateSchedule{
			PeakStart:   8 * time.Hour,
			PeakEnd:     16 * time.Hour,
			PeakRate:    MustParseMoney("1.00"),
			OffPeakRate: MustParseMoney("0.50"),
		},
		Discount: DiscountPolicy{
			Threshold: 5,
			Deduction: MustParseMoney("0.20"),
		},
	}
}
