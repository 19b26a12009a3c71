package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"habitcheck/internal/core"
	"habitcheck/internal/services"
	"habitcheck/internal/storage"
)

type handlers struct {
	expenses *services.ExpenseService
	stats    *services.StatsService
	store    storage.Store
}

// expenseRequest uses pointer fields so missing and zero values can be told
// apart, both for create validation and partial updates.
type expenseRequest struct {
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *handlers) addExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Category == nil || req.Amount == nil {
		respondError(ctx, w, http.StatusBadRequest, "Category and amount required", nil)
		return
	}

	e := core.Expense{Category: *req.Category, Amount: *req.Amount}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondError(ctx, w, http.StatusBadRequest, "Invalid date format", err)
			return
		}
		e.Date = date
	}

	if err := h.expenses.CreateExpense(ctx, &e); err != nil {
		if errors.Is(err, core.ErrMissingCategory) || errors.Is(err, core.ErrInvalidAmount) {
			respondError(ctx, w, http.StatusBadRequest, "Category and amount required", nil)
			return
		}
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}

	h.stats.InvalidateSummary()
	respondJSON(ctx, w, http.StatusCreated, map[string]any{
		"message": "Expense added!",
		"expense": e,
	})
}

func (h *handlers) listExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	expenses, err := h.expenses.ListExpenses(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	respondJSON(ctx, w, http.StatusOK, expenses)
}

// updateExpense applies a partial update. An unknown id is not an error, the
// response carries a null expense instead.
func (h *handlers) updateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := core.ExpenseUpdate{Category: req.Category, Amount: req.Amount}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondError(ctx, w, http.StatusBadRequest, "Invalid date format", err)
			return
		}
		patch.Date = &date
	}

	updated, err := h.expenses.UpdateExpense(ctx, id, patch)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}

	h.stats.InvalidateSummary()
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"message": "Expense updated",
		"expense": updated,
	})
}

// deleteExpense removes a record. Deleting an unknown id reports success.
func (h *handlers) deleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	err := h.expenses.DeleteExpense(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}

	h.stats.InvalidateSummary()
	respondJSON(ctx, w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, err := h.stats.Summary(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, s)
}

func (h *handlers) recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activity, err := h.stats.Recent(ctx, time.Now().UTC())
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "Server error", err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, activity)
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Finance Habit Checker API is running"))
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.store.Ping(ctx); err != nil {
		respondError(ctx, w, http.StatusServiceUnavailable, "Store unavailable", err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}
