package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/paisabuddy/paisabuddy/internal/ledger"
	"github.com/paisabuddy/paisabuddy/internal/models"
)

// User-facing messages for the trade boundary. Validation and
// business-rule failures share the payload shape and are told apart by
// the message.
const (
	msgInvalidInput      = "Invalid input. Please check the quantity."
	msgInvalidHoldings   = "Invalid input. Could not read your holdings."
	msgInsufficientFunds = "You don't have enough funds for this transaction."
	msgNoSuchHolding     = "You don't own this stock."
	msgOversell          = "You can't sell more shares than you own."
)

// TradeResult is the two-field success/failure payload of the trade
// boundary; holdings and funds are present only on success.
type TradeResult struct {
	Message         string           `json:"message"`
	IsSuccess       bool             `json:"isSuccess"`
	UpdatedHoldings []models.Holding `json:"updatedHoldings,omitempty"`
	UpdatedFunds    *decimal.Decimal `json:"updatedFunds,omitempty"`
}

// tradeRequest is the stateless boundary payload: the client round-trips
// its holdings as a serialized JSON string together with the trade
// intent and a price snapshot.
type tradeRequest struct {
	Ticker          string          `json:"ticker"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int64           `json:"quantity"`
	AvailableFunds  decimal.Decimal `json:"availableFunds"`
	CurrentHoldings string          `json:"currentHoldings"`
}

func (r *tradeRequest) snapshot() (models.Snapshot, error) {
	var holdings []models.Holding
	if r.CurrentHoldings != "" {
		if err := json.Unmarshal([]byte(r.CurrentHoldings), &holdings); err != nil {
			return models.Snapshot{}, fmt.Errorf("malformed holdings: %w", err)
		}
	}
	return models.Snapshot{Holdings: holdings, Cash: r.AvailableFunds}, nil
}

// BuyStock handles POST /trades/buy
func (h *Handler) BuyStock(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidInput})
		return
	}

	snap, err := req.snapshot()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidHoldings})
		return
	}

	next, err := ledger.Buy(snap, req.Ticker, req.Name, req.Price, req.Quantity)
	if err != nil {
		h.respondTradeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, TradeResult{
		Message:         fmt.Sprintf("Successfully bought %d share(s) of %s.", req.Quantity, req.Ticker),
		IsSuccess:       true,
		UpdatedHoldings: next.Holdings,
		UpdatedFunds:    &next.Cash,
	})
}

// SellStock handles POST /trades/sell
func (h *Handler) SellStock(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidInput})
		return
	}

	snap, err := req.snapshot()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidHoldings})
		return
	}

	next, err := ledger.Sell(snap, req.Ticker, req.Price, req.Quantity)
	if err != nil {
		h.respondTradeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, TradeResult{
		Message:         fmt.Sprintf("Successfully sold %d share(s) of %s.", req.Quantity, req.Ticker),
		IsSuccess:       true,
		UpdatedHoldings: next.Holdings,
		UpdatedFunds:    &next.Cash,
	})
}

// respondTradeError maps ledger rejections onto the boundary payload.
// Validation failures get a 400; business rejections keep the 200 status
// the client form-state flow expects.
func (h *Handler) respondTradeError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidInput})
	case err == ledger.ErrInsufficientFunds:
		respondJSON(w, http.StatusOK, TradeResult{Message: msgInsufficientFunds})
	case err == ledger.ErrNoSuchHolding:
		respondJSON(w, http.StatusOK, TradeResult{Message: msgNoSuchHolding})
	case err == ledger.ErrInsufficientQuantity:
		respondJSON(w, http.StatusOK, TradeResult{Message: msgOversell})
	default:
		h.log.WithError(err).Error("unexpected ledger error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
