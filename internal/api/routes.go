package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Stateless trade boundary: the client round-trips its holdings.
	api.HandleFunc("/trades/buy", handler.BuyStock).Methods("POST")
	api.HandleFunc("/trades/sell", handler.SellStock).Methods("POST")

	// Persisted portfolio sessions with optimistic concurrency.
	api.HandleFunc("/portfolio", handler.CreatePortfolio).Methods("POST")
	api.HandleFunc("/portfolio/{id}", handler.GetPortfolio).Methods("GET")
	api.HandleFunc("/portfolio/{id}/trades", handler.SessionTrade).Methods("POST")
	api.HandleFunc("/portfolio/{id}/journal", handler.GetJournal).Methods("GET")
	api.HandleFunc("/portfolio/{id}/stats", handler.GetJournalStats).Methods("GET")

	// Batch market data
	api.HandleFunc("/market-data", handler.GetMarketData).Methods("POST")

	// Budgeting tracker
	api.HandleFunc("/budget/{id}/entries", handler.AddBudgetEntry).Methods("POST")
	api.HandleFunc("/budget/{id}/entries", handler.ListBudgetEntries).Methods("GET")
	api.HandleFunc("/budget/{id}/targets", handler.UpdateBudgetTargets).Methods("PUT")
	api.HandleFunc("/budget/{id}/profile", handler.UpdateBudgetProfile).Methods("PUT")
	api.HandleFunc("/budget/{id}/summary", handler.GetBudgetSummary).Methods("GET")

	return r
}
