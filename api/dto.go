/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  tariff and billing types from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Money fields are strings with two fractional digits ("6.60") so that
  clients never parse prices as binary floating point.

TIMESTAMPS:
  Call timestamps use the log layout dd-MM-yyyy HH:mm:ss.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/tariff.go: TariffJSON
*/
package api

import (
	"time"

	"github.com/warp/call-billing/billing"
	"github.com/warp/call-billing/tariff"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PriceCallRequest prices a single call without any promotion.
type PriceCallRequest struct {
	Number string `json:"number"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// CallPriceDTO is a priced call.
type CallPriceDTO struct {
	Number  string `json:"number"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int64  `json:"minutes"`
	Price   string `json:"price"`
	Free    bool   `json:"free,omitempty"`
}

// BillRequest carries a call log as JSON. Logs may also be posted as text/plain.
type BillRequest struct {
	Log string `json:"log"`
}

// StatementDTO is a billed log.
type StatementDTO struct {
	ID         string         `json:"id"`
	Total      string         `json:"total"`
	FreeNumber string         `json:"free_number,omitempty"`
	Calls      []CallPriceDTO `json:"calls"`
	BilledAt   string         `json:"billed_at"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCallPriceDTO(call tariff.Call, price tariff.Money, free bool) CallPriceDTO {
	return CallPriceDTO{
		Number:  call.Number.String(),
		Start:   call.Start.Format(billing.TimestampLayout),
		End:     call.End.Format(billing.TimestampLayout),
		Minutes: call.BilledMinutes(),
		Price:   price.String(),
		Free:    free,
	}
}

func toStatementDTO(stmt *billing.Statement) StatementDTO {
	calls := make([]CallPriceDTO, len(stmt.Lines))
	for i, line := range stmt.Lines {
		calls[i] = toCallPriceDTO(line.Call, line.Price, line.Free)
	}
	return StatementDTO{
		ID:         stmt.ID,
		Total:      stmt.Total.String(),
		FreeNumber: stmt.FreeNumber.String(),
		Calls:      calls,
		BilledAt:   stmt.BilledAt.Format(time.RFC3339),
	}
}

// ScenarioDTO describes a built-in demo call log.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Log         string `json:"log"`
}

// LoadScenarioRequest selects a demo call log to bill.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}
