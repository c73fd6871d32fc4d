package billing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/call-billing/billing"
	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// PROMOTION
// =============================================================================

func calls(t *testing.T, numbers ...string) []tariff.Call {
	t.Helper()
	start := time.Date(2020, 1, 13, 10, 0, 0, 0, time.UTC)
	out := make([]tariff.Call, 0, len(numbers))
	for _, n := range numbers {
		c, err := tariff.NewCall(tariff.PhoneNumber(n), start, start.Add(time.Minute))
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestMostCalledNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    tariff.PhoneNumber
		wantOK  bool
	}{
		{"empty log", nil, "", false},
		{"single call", []string{"420774577453"}, "420774577453", true},
		{"highest count wins", []string{"111", "999", "111"}, "111", true},
		{"tie goes to larger number", []string{"420774577453", "420776562353"}, "420776562353", true},
		{"tie compares by length first", []string{"99", "100", "99", "100"}, "100", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := billing.MostCalledNumber{}.FreeNumber(calls(t, tt.numbers...))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

func TestCalculator_EmptyLog(t *testing.T) {
	total, err := billing.NewCalculator(zap.NewNop()).Calculate("")

	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCalculator_SingleCallIsFree(t *testing.T) {
	// GIVEN: one call, so its number is the most called
	total, err := billing.NewCalculator(nil).Calculate("420774577453,13-01-2020 10:00:00,13-01-2020 10:03:00")

	require.NoError(t, err)
	assert.Equal(t, "0.00", total.String())
}

func TestCalculator_MultipleCallsWithPromotion(t *testing.T) {
	// 420774577453: 2 calls (most called) - FREE
	// 420776562353: 1 call, 5 minutes peak: 5 x 1.00
	log := strings.Join([]string{
		"420774577453,13-01-2020 10:00:00,13-01-2020 10:03:00",
		"420774577453,13-01-2020 11:00:00,13-01-2020 11:02:00",
		"420776562353,13-01-2020 12:00:00,13-01-2020 12:05:00",
	}, "\n")

	stmt, err := billing.NewCalculator(zap.NewNop()).Statement(log)

	require.NoError(t, err)
	assert.Equal(t, "5.00", stmt.Total.String())
	assert.Equal(t, tariff.PhoneNumber("420774577453"), stmt.FreeNumber)
	require.Len(t, stmt.Lines, 3)
	assert.True(t, stmt.Lines[0].Free)
	assert.True(t, stmt.Lines[1].Free)
	assert.False(t, stmt.Lines[2].Free)
	assert.Equal(t, int64(5), stmt.Lines[2].Minutes)
	assert.NotEmpty(t, stmt.ID)
}

func TestCalculator_SampleLog(t *testing.T) {
	// 420774577453 and 420776562353 tie at one call; the larger is free.
	log := "420774577453,13-01-2020 18:10:15,13-01-2020 18:12:57\n" +
		"420776562353,18-01-2020 08:59:20,18-01-2020 09:10:00\n"

	total, err := billing.NewCalculator(zap.NewNop()).Calculate(log)

	require.NoError(t, err)
	assert.Equal(t, "1.50", total.String())
}

func TestCalculator_MalformedLogRejected(t *testing.T) {
	_, err := billing.NewCalculator(zap.NewNop()).Calculate("420774577453,13-01-2020 18:10:15")

	assert.ErrorIs(t, err, billing.ErrFieldCount)
}

func TestCalculator_NoPromotionBillsEverything(t *testing.T) {
	calc := billing.NewCalculator(zap.NewNop())
	calc.Promotion = billing.NoPromotion{}

	total, err := calc.Calculate("420774577453,13-01-2020 10:00:00,13-01-2020 10:07:00")

	require.NoError(t, err)
	assert.Equal(t, "6.60", total.String())
}

func TestCalculator_CustomTariff(t *testing.T) {
	tf := tariff.DefaultTariff()
	tf.Schedule.PeakRate = tariff.MustParseMoney("2.00")
	calc := billing.NewCalculatorWithTariff(tf, zap.NewNop())
	calc.Promotion = billing.NoPromotion{}

	total, err := calc.Calculate("420774577453,13-01-2020 10:00:00,13-01-2020 10:03:00")

	require.NoError(t, err)
	assert.Equal(t, "6.00", total.String())
}
