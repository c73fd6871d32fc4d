package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/call-billing/cmd/billcalc/cmd"
	"github.com/warp/call-billing/tariff"
)

const threeCallLog = `420774577453,13-01-2020 10:00:00,13-01-2020 10:03:00
420774577453,13-01-2020 11:00:00,13-01-2020 11:02:00
420776562353,13-01-2020 12:00:00,13-01-2020 12:05:00
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BILLING_TARIFF_FILE", "")
	t.Setenv("BILLING_LOG_OUTPUT", filepath.Join(t.TempDir(), "billcalc.log"))

	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBill_File(t *testing.T) {
	// GIVEN: two calls to the most called number and one 5 minute peak call
	path := writeFile(t, "calls.csv", threeCallLog)

	// WHEN
	out, err := run(t, "", "bill", path)

	// THEN: only the 5 minute call is billed
	require.NoError(t, err)
	assert.Equal(t, "5.00\n", out)
}

func TestBill_Stdin(t *testing.T) {
	out, err := run(t, threeCallLog, "bill", "-")

	require.NoError(t, err)
	assert.Equal(t, "5.00\n", out)
}

func TestBill_NoPromotion(t *testing.T) {
	out, err := run(t, threeCallLog, "bill", "--no-promotion")

	require.NoError(t, err)
	assert.Equal(t, "10.00\n", out)
}

func TestBill_Lines(t *testing.T) {
	out, err := run(t, threeCallLog, "bill", "--lines")

	require.NoError(t, err)
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "(free)")
	assert.Contains(t, out, "2020-01-13 12:00:00")
	assert.True(t, strings.HasSuffix(out, "TOTAL 5.00\n"), out)
}

func TestBill_EmptyLog(t *testing.T) {
	out, err := run(t, "", "bill")

	require.NoError(t, err)
	assert.Equal(t, "0.00\n", out)
}

func TestBill_MalformedLog(t *testing.T) {
	_, err := run(t, "420774577453,13-01-2020 10:00:00\n", "bill")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestBill_MissingFile(t *testing.T) {
	_, err := run(t, "", "bill", filepath.Join(t.TempDir(), "missing.csv"))

	assert.Error(t, err)
}

func TestBill_CustomTariff(t *testing.T) {
	// GIVEN: a flat 2.00 per minute tariff with no reachable discount
	tariffPath := writeFile(t, "tariff.json", `{
		"peak_start": "00:00:00",
		"peak_end": "24:00:00",
		"peak_rate": "2.00",
		"off_peak_rate": "1.00",
		"discount": {"after_minutes": 1000, "amount": "0"}
	}`)

	out, err := run(t, threeCallLog, "bill", "--tariff", tariffPath)

	require.NoError(t, err)
	assert.Equal(t, "10.00\n", out)
}

func TestBill_InvalidTariff(t *testing.T) {
	tariffPath := writeFile(t, "tariff.json", `{"peak_start":"16:00:00"}`)

	_, err := run(t, threeCallLog, "bill", "--tariff", tariffPath)

	assert.Error(t, err)
}

func TestPrice(t *testing.T) {
	// GIVEN: 15:57-16:05 crosses the end of the peak window
	out, err := run(t, "", "price",
		"--number", "420774577453",
		"--start", "13-01-2020 15:57:00",
		"--end", "13-01-2020 16:05:00",
	)

	require.NoError(t, err)
	assert.Equal(t, "4.90 (8 min)\n", out)
}

func TestPrice_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad number", []string{"--number", "42077x", "--start", "13-01-2020 10:00:00", "--end", "13-01-2020 10:01:00"}},
		{"bad start", []string{"--number", "420774577453", "--start", "2020-01-13", "--end", "13-01-2020 10:01:00"}},
		{"end before start", []string{"--number", "420774577453", "--start", "13-01-2020 10:01:00", "--end", "13-01-2020 10:00:00"}},
		{"missing flag", []string{"--number", "420774577453"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", append([]string{"price"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestVerify(t *testing.T) {
	out, err := run(t, threeCallLog, "verify")

	require.NoError(t, err)
	assert.Equal(t, "checked 3, skipped 0, mismatched 0\n", out)
}

func TestVerify_SkipsLongCalls(t *testing.T) {
	out, err := run(t, threeCallLog, "verify", "--max-minutes", "4")

	require.NoError(t, err)
	assert.Equal(t, "checked 2, skipped 1, mismatched 0\n", out)
}

func TestVerify_MaxMinutesAboveEngineLimit(t *testing.T) {
	limit := strconv.FormatInt(tariff.MaxReferenceMinutes+1, 10)

	_, err := run(t, threeCallLog, "verify", "--max-minutes", limit)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-minutes")
}

func TestVerify_MaxMinutesAtEngineLimit(t *testing.T) {
	limit := strconv.FormatInt(tariff.MaxReferenceMinutes, 10)

	out, err := run(t, threeCallLog, "verify", "--max-minutes", limit)

	require.NoError(t, err)
	assert.Equal(t, "checked 3, skipped 0, mismatched 0\n", out)
}

func TestTariff(t *testing.T) {
	out, err := run(t, "", "tariff")

	require.NoError(t, err)
	assert.Contains(t, out, `"peak_start": "08:00:00"`)
	assert.Contains(t, out, `"off_peak_rate": "0.50"`)
}
