package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// AddBudgetEntry handles POST /budget/{id}/entries
func (h *Handler) AddBudgetEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Note     string          `json:"note"`
		SpentAt  *time.Time      `json:"spent_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	if !req.Amount.IsPositive() {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	entry := &models.BudgetEntry{
		SessionID: vars["id"],
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
	}
	if req.SpentAt != nil {
		entry.SpentAt = *req.SpentAt
	}

	if err := h.budgets.CreateBudgetEntry(entry); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListBudgetEntries handles GET /budget/{id}/entries
func (h *Handler) ListBudgetEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.budgets.GetBudgetEntries(vars["id"], limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*models.BudgetEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// UpdateBudgetTargets handles PUT /budget/{id}/targets
func (h *Handler) UpdateBudgetTargets(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Targets []struct {
			Category string          `json:"category"`
			Monthly  decimal.Decimal `json:"monthly"`
		} `json:"targets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Targets) == 0 {
		http.Error(w, "at least one target is required", http.StatusBadRequest)
		return
	}
	for _, t := range req.Targets {
		if t.Category == "" {
			http.Error(w, "category is required", http.StatusBadRequest)
			return
		}
		if t.Monthly.IsNegative() {
			http.Error(w, "monthly target must not be negative", http.StatusBadRequest)
			return
		}
	}

	for _, t := range req.Targets {
		target := &models.BudgetTarget{
			SessionID: vars["id"],
			Category:  t.Category,
			Monthly:   t.Monthly,
		}
		if err := h.budgets.UpsertBudgetTarget(target); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateBudgetProfile handles PUT /budget/{id}/profile
func (h *Handler) UpdateBudgetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Income      decimal.Decimal `json:"income"`
		SavingsGoal decimal.Decimal `json:"savings_goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Income.IsPositive() {
		http.Error(w, "income must be positive", http.StatusBadRequest)
		return
	}
	if req.SavingsGoal.IsNegative() {
		http.Error(w, "savings goal must not be negative", http.StatusBadRequest)
		return
	}

	profile := &models.BudgetProfile{
		SessionID:   vars["id"],
		Income:      req.Income,
		SavingsGoal: req.SavingsGoal,
	}
	if err := h.budgets.UpsertBudgetProfile(profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetBudgetSummary handles GET /budget/{id}/summary
func (h *Handler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := h.budgets.GetBudgetSummary(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.Categories == nil {
		summary.Categories = []models.CategorySummary{}
	}
	respondJSON(w, http.StatusOK, summary)
}
