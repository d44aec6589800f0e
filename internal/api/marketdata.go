package api

import (
	"encoding/json"
	"net/http"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// GetMarketData handles POST /market-data
//
// The response is a best-effort subset of the request: tickers that fail
// to price are dropped, and change figures appear only once a previous
// observation exists.
func (h *Handler) GetMarketData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stocks []models.Instrument `json:"stocks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	for _, inst := range req.Stocks {
		if inst.Ticker == "" {
			http.Error(w, "every stock needs a ticker", http.StatusBadRequest)
			return
		}
	}

	quotes := h.quotes.Quotes(r.Context(), req.Stocks)
	if quotes == nil {
		quotes = []models.Quote{}
	}
	respondJSON(w, http.StatusOK, quotes)
}
