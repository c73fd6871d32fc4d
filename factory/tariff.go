/*
Package factory provides JSON to Go tariff conversion.

PURPOSE:
  Converts JSON tariff definitions into tariff.Tariff values, so rates,
  the peak window and the discount can change without a code change.

JSON SCHEMA:
  {
    "peak_start": "08:00:00",
    "peak_end": "16:00:00",
    "peak_rate": "1.00",
    "off_peak_rate": "0.50",
    "discount": {
      "after_minutes": 5,
      "amount": "0.20"
    }
  }

  - Clock values are HH:MM:SS; peak_end may be "24:00:00"
  - Money values are decimal strings, never JSON numbers, so they are
    never rounded through float64
  - after_minutes is the 0-indexed minute where the discount begins

VALIDATION:
  Struct tags are checked with go-playground/validator. On top of that a
  tariff is refused when a discounted rate would be negative: the engine
  subtracts without a floor, so such a tariff would produce negative bills.

USAGE:
  f := factory.NewTariffFactory()
  t, err := f.ParseTariff(jsonString)
  engine := tariff.NewIntervalEngine(t)

SEE ALSO:
  - tariff/schedule.go: RateSchedule and DiscountPolicy
  - cmd/server/main.go, cmd/billcalc: load tariff files
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/call-billing/tariff"
)

var (
	// ErrInvalidTariff is returned when a tariff definition fails validation.
	ErrInvalidTariff = errors.New("invalid tariff")

	// ErrNegativeRate is returned when a base or discounted rate is negative.
	ErrNegativeRate = errors.New("negative per-minute rate")
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TariffJSON is the JSON representation of a tariff.
type TariffJSON struct {
	PeakStart   string        `json:"peak_start" validate:"required,clock"`
	PeakEnd     string        `json:"peak_end" validate:"required,clock"`
	PeakRate    string        `json:"peak_rate" validate:"required,money"`
	OffPeakRate string        `json:"off_peak_rate" validate:"required,money"`
	Discount    *DiscountJSON `json:"discount" validate:"required"`
}

// DiscountJSON represents the long-call discount.
type DiscountJSON struct {
	AfterMinutes *int64 `json:"after_minutes" validate:"required,min=0"`
	Amount       string `json:"amount" validate:"required,money"`
}

// =============================================================================
// TARIFF FACTORY
// =============================================================================

// TariffFactory converts JSON tariffs to tariff.Tariff.
type TariffFactory struct {
	validate *validator.Validate
}

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// NewTariffFactory creates a factory with the clock and money validators registered.
func NewTariffFactory() *TariffFactory {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f.Tag.Get("json"))
	})
	return &TariffFactory{validate: v}
}

// ParseTariff parses and validates a JSON tariff.
func (f *TariffFactory) ParseTariff(jsonStr string) (tariff.Tariff, error) {
	var tj TariffJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return tariff.Tariff{}, fmt.Errorf("%w: %v", ErrInvalidTariff, err)
	}
	return f.Build(tj)
}

// LoadTariff reads a JSON tariff file.
func (f *TariffFactory) LoadTariff(path string) (tariff.Tariff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tariff.Tariff{}, fmt.Errorf("failed to read tariff %s: %w", path, err)
	}
	return f.ParseTariff(string(data))
}

// Build validates tj and converts it.
func (f *TariffFactory) Build(tj TariffJSON) (tariff.Tariff, error) {
	if err := f.validate.Struct(tj); err != nil {
		return tariff.Tariff{}, fmt.Errorf("%w: %s", ErrInvalidTariff, formatValidationErrors(err))
	}

	peakStart, _ := ParseClock(tj.PeakStart)
	peakEnd, _ := ParseClock(tj.PeakEnd)
	peakRate, _ := tariff.ParseMoney(tj.PeakRate)
	offPeakRate, _ := tariff.ParseMoney(tj.OffPeakRate)
	deduction, _ := tariff.ParseMoney(tj.Discount.Amount)

	schedule, err := tariff.NewRateSchedule(peakStart, peakEnd, peakRate, offPeakRate)
	if err != nil {
		return tariff.Tariff{}, fmt.Errorf("%w: %v", ErrInvalidTariff, err)
	}
	if peakStart > peakEnd {
		return tariff.Tariff{}, fmt.Errorf("%w: peak_start %s after peak_end %s", ErrInvalidTariff, tj.PeakStart, tj.PeakEnd)
	}

	for name, rate := range map[string]tariff.Money{
		"peak_rate":                peakRate,
		"off_peak_rate":            offPeakRate,
		"discount.amount":          deduction,
		"discounted peak_rate":     peakRate.Sub(deduction),
		"discounted off_peak_rate": offPeakRate.Sub(deduction),
	} {
		if rate.IsNegative() {
			return tariff.Tariff{}, fmt.Errorf("%w: %s is %s", ErrNegativeRate, name, rate)
		}
	}

	return tariff.Tariff{
		Schedule: schedule,
		Discount: tariff.DiscountPolicy{
			Threshold: *tj.Discount.AfterMinutes,
			Deduction: deduction,
		},
	}, nil
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// ParseClock parses HH:MM:SS into an offset from midnight. "24:00:00"
// is accepted as the end of the day.
func ParseClock(s string) (time.Duration, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM:SS", s)
	}
	h, _ := strconv.Atoi(s[0:2])
	m, _ := strconv.Atoi(s[3:5])
	sec, _ := strconv.Atoi(s[6:8])
	if h == 24 && m == 0 && sec == 0 {
		return tariff.Day, nil
	}
	if h > 23 || m > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatClock renders an offset from midnight as HH:MM:SS.
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// ToJSON converts a tariff back to its JSON representation.
func ToJSON(t tariff.Tariff) TariffJSON {
	after := t.Discount.Threshold
	return TariffJSON{
		PeakStart:   FormatClock(t.Schedule.PeakStart),
		PeakEnd:     FormatClock(t.Schedule.PeakEnd),
		PeakRate:    exact(t.Schedule.PeakRate),
		OffPeakRate: exact(t.Schedule.OffPeakRate),
		Discount: &DiscountJSON{
			AfterMinutes: &after,
			Amount:       exact(t.Discount.Deduction),
		},
	}
}

// exact renders money with at least two fractional digits and never rounds.
func exact(m tariff.Money) string {
	if m.Value.Exponent() >= -2 {
		return m.String()
	}
	return m.Value.String()
}

// DefaultTariffJSON returns the standard tariff as JSON.
func DefaultTariffJSON() string {
	b, _ := json.MarshalIndent(ToJSON(tariff.DefaultTariff()), "", "  ")
	return string(b)
}

func formatValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Namespace() + " is invalid"
		switch fe.Tag() {
		case "required":
			msg = fe.Namespace() + " is required"
		case "min":
			msg = fe.Namespace() + " must be at least " + fe.Param()
		case "clock":
			msg = fe.Namespace() + " must be HH:MM:SS"
		case "money":
			msg = fe.Namespace() + " must be a decimal string"
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, ", ")
}

func jsonName(tag string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
