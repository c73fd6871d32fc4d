/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario log parses and bills to the total its
	description advertises under the default tariff.
*/
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/call-billing/tariff"
)

func setupTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(tariff.DefaultTariff(), zap.NewNop())
}

func TestScenarios(t *testing.T) {
	want := map[string]struct {
		total string
		free  string
	}{
		"three-calls": {"5.00", "420774577453"},
		"sample-log":  {"1.50", "420776562353"},
		"peak-end":    {"4.90", "420776562353"},
		"midnight":    {"2.50", "420776562353"},
		"full-day":    {"673.00", "420776562353"},
	}
	require.Len(t, scenarios, len(want))

	h := setupTestHandler(t)
	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			// GIVEN: a built-in scenario
			expected, ok := want[s.ID]
			require.True(t, ok, "scenario %s has no expected total", s.ID)

			// WHEN: billing its log
			stmt, err := h.Calculator.Statement(s.Log)

			// THEN: the total matches the description
			require.NoError(t, err)
			assert.Equal(t, expected.total, stmt.Total.String())
			assert.Equal(t, expected.free, stmt.FreeNumber.String())
			assert.Contains(t, s.Description, expected.total)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	h := setupTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/load", strings.NewReader(`{"scenario_id":"peak-end"}`))
	h.LoadScenario(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got StatementDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "4.90", got.Total)
	assert.Len(t, got.Calls, 3)
}

func TestLoadScenario_Unknown(t *testing.T) {
	h := setupTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/load", strings.NewReader(`{"scenario_id":"nope"}`))
	h.LoadScenario(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListScenarios(t *testing.T) {
	h := setupTestHandler(t)

	rec := httptest.NewRecorder()
	h.ListScenarios(rec, httptest.NewRequest(http.MethodGet, "/api/scenarios", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []ScenarioDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, len(scenarios))
}
