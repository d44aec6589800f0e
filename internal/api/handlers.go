package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/paisabuddy/paisabuddy/internal/database"
	"github.com/paisabuddy/paisabuddy/internal/models"
)

// SessionStore defines the portfolio session operations handlers need.
type SessionStore interface {
	CreateSession(id string, snap models.Snapshot) error
	GetSession(id string) (*models.PortfolioSession, error)
	SaveSnapshot(id string, snap models.Snapshot, expectedVersion int64) (int64, error)
}

// JournalStore defines the trade journal read operations.
type JournalStore interface {
	GetJournalBySession(sessionID string, limit int) ([]*models.JournalEntry, error)
	GetJournalStats(sessionID string) (*database.JournalStats, error)
}

// BudgetStore defines the budgeting tracker operations.
type BudgetStore interface {
	CreateBudgetEntry(e *models.BudgetEntry) error
	GetBudgetEntries(sessionID string, limit int) ([]*models.BudgetEntry, error)
	UpsertBudgetTarget(t *models.BudgetTarget) error
	UpsertBudgetProfile(p *models.BudgetProfile) error
	GetBudgetSummary(sessionID string) (*models.BudgetSummary, error)
}

// QuoteService produces batch quotes for a list of instruments.
type QuoteService interface {
	Quotes(ctx context.Context, instruments []models.Instrument) []models.Quote
}

// EventPublisher publishes executed trades; nil disables publishing.
type EventPublisher interface {
	PublishTradeExecuted(ctx context.Context, event models.TradeEvent) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	sessions SessionStore
	journal  JournalStore
	budgets  BudgetStore
	quotes   QuoteService
	producer EventPublisher
	log      *logrus.Logger
}

// NewHandler creates a new Handler.
func NewHandler(sessions SessionStore, journal JournalStore, budgets BudgetStore, quotes QuoteService, producer EventPublisher, log *logrus.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		journal:  journal,
		budgets:  budgets,
		quotes:   quotes,
		producer: producer,
		log:      log,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
