/*
scenarios.go - Demo call logs for testing and demonstrations

PURPOSE:

	Provides pre-built call logs that exercise the tariff features one at
	a time. Loading a scenario bills its log exactly like POST /api/bills.

AVAILABLE SCENARIOS:

	three-calls:  Promotion frees the most called number
	sample-log:   Two short off-peak calls, one of them free
	peak-end:     Call crossing the end of the peak window past the discount
	midnight:     Off-peak call crossing midnight
	full-day:     24 hour call covering every window

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/load
	{"scenario_id": "peak-end"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description and log
 2. Add a case to TestScenarios with the expected total

NOTE:

	Scenario totals assume the default tariff. A server started with a
	custom tariff bills them with that tariff instead.

SEE ALSO:
  - handlers.go: CreateBill
  - billing/parser.go: Log format
*/
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "three-calls",
		Name:        "Three Calls",
		Description: "Two calls to one number are free, the 5 minute peak call costs 5.00",
		Log: "420774577453,13-01-2020 10:00:00,13-01-2020 10:03:00\n" +
			"420774577453,13-01-2020 11:00:00,13-01-2020 11:02:00\n" +
			"420776562353,13-01-2020 12:00:00,13-01-2020 12:05:00\n",
	},
	{
		ID:          "sample-log",
		Name:        "Sample Log",
		Description: "Tie on call count goes to the larger number; 3 off-peak minutes cost 1.50",
		Log: "420774577453,13-01-2020 18:10:15,13-01-2020 18:12:57\n" +
			"420776562353,18-01-2020 08:59:20,18-01-2020 09:10:00\n",
	},
	{
		ID:          "peak-end",
		Name:        "Peak End",
		Description: "15:57-16:05 crosses the peak end after the discount starts: 4.90",
		Log: "420774577453,13-01-2020 15:57:00,13-01-2020 16:05:00\n" +
			"420776562353,13-01-2020 09:00:00,13-01-2020 09:01:00\n" +
			"420776562353,13-01-2020 10:00:00,13-01-2020 10:01:00\n",
	},
	{
		ID:          "midnight",
		Name:        "Midnight",
		Description: "5 off-peak minutes across midnight cost 2.50",
		Log: "420774577453,13-01-2020 23:58:00,14-01-2020 00:03:00\n" +
			"420776562353,13-01-2020 09:00:00,13-01-2020 09:01:00\n" +
			"420776562353,13-01-2020 10:00:00,13-01-2020 10:01:00\n",
	},
	{
		ID:          "full-day",
		Name:        "Full Day",
		Description: "A 24 hour call from midnight: every window plus the discount, 673.00",
		Log: "420774577453,13-01-2020 00:00:00,14-01-2020 00:00:00\n" +
			"420776562353,13-01-2020 09:00:00,13-01-2020 09:01:00\n" +
			"420776562353,13-01-2020 10:00:00,13-01-2020 10:01:00\n",
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario bills a predefined call log.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	stmt, err := h.Calculator.Statement(s.Log)
	if err != nil {
		h.Logger.Error("scenario failed", zap.String("scenario", s.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to bill scenario", err)
		return
	}

	h.Logger.Info("scenario billed",
		zap.String("scenario", s.ID),
		zap.String("statement_id", stmt.ID),
		zap.Stringer("total", stmt.Total),
	)
	writeJSON(w, http.StatusOK, toStatementDTO(stmt))
}
