package billing

import (
	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// FREE PROMOTION
// =============================================================================

// FreePromotion selects at most one number whose calls are not billed.
type FreePromotion interface {
	FreeNumber(calls []tariff.Call) (tariff.PhoneNumber, bool)
}

// MostCalledNumber frees the number with the most calls. Ties go to the
// arithmetically largest number.
type MostCalledNumber struct{}

// FreeNumber returns false only for an empty log.
func (MostCalledNumber) FreeNumber(calls []tariff.Call) (tariff.PhoneNumber, bool) {
	counts := make(map[tariff.PhoneNumber]int, len(calls))
	for _, c := range calls {
		counts[c.Number]++
	}

	var (
		best      tariff.PhoneNumber
		bestCount int
	)
	for number, count := range counts {
		if count > bestCount || (count == bestCount && number.Compare(best) > 0) {
			best, bestCount = number, count
		}
	}
	return best, bestCount > 0
}

// NoPromotion bills every call.
type NoPromotion struct{}

func (NoPromotion) FreeNumber([]tariff.Call) (tariff.PhoneNumber, bool) { return "", false }
