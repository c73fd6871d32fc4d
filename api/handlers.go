/*
handlers.go - HTTP API handlers for call billing

PURPOSE:
  Exposes the billing calculator via REST API. Handles HTTP
  request/response and JSON serialization, and delegates to billing and
  tariff for everything else.

ENDPOINTS:
  GET    /api/tariff        Active tariff as JSON
  POST   /api/calls/price   Price one call (no promotion)
  POST   /api/bills         Bill a whole log (promotion applied)
  GET    /api/scenarios     List demo call logs
  POST   /api/scenarios/load Bill a demo call log
  GET    /healthz           Liveness

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (parser / tariff constructors)
  3. Price via billing.Calculator or tariff.Pricer
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, malformed log record, invalid call
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/warp/call-billing/billing"
	"github.com/warp/call-billing/factory"
	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. It is safe for
// concurrent use: every field is read-only after construction.
type Handler struct {
	Tariff     tariff.Tariff
	Calculator *billing.Calculator
	Logger     *zap.Logger
}

// NewHandler creates a handler that bills with the given tariff.
func NewHandler(t tariff.Tariff, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Tariff:     t,
		Calculator: billing.NewCalculatorWithTariff(t, logger.Named("billing")),
		Logger:     logger,
	}
}

// =============================================================================
// TARIFF
// =============================================================================

// GetTariff returns the active tariff.
func (h *Handler) GetTariff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ToJSON(h.Tariff))
}

// =============================================================================
// PRICING
// =============================================================================

// PriceCall prices a single call.
func (h *Handler) PriceCall(w http.ResponseWriter, r *http.Request) {
	var req PriceCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	call, err := callFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid call", err)
		return
	}

	price := h.Calculator.Pricer.Price(call)
	writeJSON(w, http.StatusOK, toCallPriceDTO(call, price, false))
}

func callFromRequest(req PriceCallRequest) (tariff.Call, error) {
	number, err := tariff.ParsePhoneNumber(req.Number)
	if err != nil {
		return tariff.Call{}, err
	}
	start, err := billing.ParseTimestamp(req.Start)
	if err != nil {
		return tariff.Call{}, err
	}
	end, err := billing.ParseTimestamp(req.End)
	if err != nil {
		return tariff.Call{}, err
	}
	return tariff.NewCall(number, start, end)
}

// CreateBill bills a call log. The log is the raw body for text/plain
// requests, otherwise a BillRequest JSON document.
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	log, err := readLog(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	stmt, err := h.Calculator.Statement(log)
	if err != nil {
		if billing.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid call log", err)
			return
		}
		h.Logger.Error("billing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to bill call log", err)
		return
	}

	h.Logger.Info("bill created",
		zap.String("statement_id", stmt.ID),
		zap.Int("calls", len(stmt.Lines)),
		zap.Stringer("total", stmt.Total),
	)
	writeJSON(w, http.StatusCreated, toStatementDTO(stmt))
}

func readLog(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" || mediaType == "text/csv" {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	var req BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.New("empty body")
		}
		return "", err
	}
	return req.Log, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
