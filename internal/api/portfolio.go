package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/paisabuddy/paisabuddy/internal/database"
	"github.com/paisabuddy/paisabuddy/internal/ledger"
	"github.com/paisabuddy/paisabuddy/internal/models"
)

// defaultStartingFunds is the virtual cash a new session starts with.
var defaultStartingFunds = decimal.NewFromInt(50000)

// CreatePortfolio handles POST /portfolio
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   string           `json:"id"`
		Cash *decimal.Decimal `json:"cash"`
	}
	if r.Body != nil {
		// An empty body is fine; defaults apply.
		json.NewDecoder(r.Body).Decode(&req)
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	cash := defaultStartingFunds
	if req.Cash != nil {
		cash = *req.Cash
	}
	if cash.IsNegative() {
		http.Error(w, "cash must not be negative", http.StatusBadRequest)
		return
	}

	snap := models.Snapshot{Holdings: []models.Holding{}, Cash: cash}
	if err := h.sessions.CreateSession(req.ID, snap); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	session, err := h.sessions.GetSession(req.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// GetPortfolio handles GET /portfolio/{id}
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	session, err := h.sessions.GetSession(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// sessionTradeRequest is a trade against a persisted session. Version is
// the snapshot version the client read; a mismatch means another trade
// landed first and the client must refresh.
type sessionTradeRequest struct {
	Side     string          `json:"side"`
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Version  int64           `json:"version"`
}

type sessionTradeResponse struct {
	TradeResult
	Version int64 `json:"version"`
}

// SessionTrade handles POST /portfolio/{id}/trades
func (h *Handler) SessionTrade(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req sessionTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: msgInvalidInput})
		return
	}

	side := strings.ToUpper(req.Side)
	if side != models.TradeSideBuy && side != models.TradeSideSell {
		respondJSON(w, http.StatusBadRequest, TradeResult{Message: "Invalid input. Trade side must be BUY or SELL."})
		return
	}

	session, err := h.sessions.GetSession(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if req.Version != session.Version {
		respondJSON(w, http.StatusConflict, TradeResult{Message: "Your portfolio changed. Refresh and try again."})
		return
	}

	var next models.Snapshot
	if side == models.TradeSideBuy {
		next, err = ledger.Buy(session.Snapshot, req.Ticker, req.Name, req.Price, req.Quantity)
	} else {
		next, err = ledger.Sell(session.Snapshot, req.Ticker, req.Price, req.Quantity)
	}
	if err != nil {
		h.respondTradeError(w, err)
		return
	}

	version, err := h.sessions.SaveSnapshot(sessionID, next, req.Version)
	if err == database.ErrStaleSnapshot {
		respondJSON(w, http.StatusConflict, TradeResult{Message: "Your portfolio changed. Refresh and try again."})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.publishTrade(r, sessionID, side, req, next)

	verb := "bought"
	if side == models.TradeSideSell {
		verb = "sold"
	}
	respondJSON(w, http.StatusOK, sessionTradeResponse{
		TradeResult: TradeResult{
			Message:         "Successfully " + verb + " " + strconv.FormatInt(req.Quantity, 10) + " share(s) of " + req.Ticker + ".",
			IsSuccess:       true,
			UpdatedHoldings: next.Holdings,
			UpdatedFunds:    &next.Cash,
		},
		Version: version,
	})
}

// publishTrade emits the executed trade to Kafka. Publishing is best
// effort: the snapshot is already persisted, so a broker outage must not
// fail the request.
func (h *Handler) publishTrade(r *http.Request, sessionID, side string, req sessionTradeRequest, next models.Snapshot) {
	if h.producer == nil {
		return
	}

	event := models.TradeEvent{
		EventID:   uuid.NewString(),
		EventType: models.EventTradeExecuted,
		SessionID: sessionID,
		Ticker:    req.Ticker,
		Name:      req.Name,
		Side:      side,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Total:     req.Price.Mul(decimal.NewFromInt(req.Quantity)),
		Timestamp: time.Now(),
	}
	if err := h.producer.PublishTradeExecuted(r.Context(), event); err != nil {
		h.log.WithError(err).Error("failed to publish trade event")
	}
}

// GetJournal handles GET /portfolio/{id}/journal
func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.journal.GetJournalBySession(vars["id"], limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*models.JournalEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetJournalStats handles GET /portfolio/{id}/stats
func (h *Handler) GetJournalStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stats, err := h.journal.GetJournalStats(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
