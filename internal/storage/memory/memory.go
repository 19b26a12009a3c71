// Package memory provides an in-memory Store used by tests and local runs
// without a database file.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"habitcheck/internal/core"
	"habitcheck/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateExpense(_ context.Context, e *core.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *e)
	return nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

func (s *Store) ListExpensesByDateDesc(ctx context.Context) ([]core.Expense, error) {
	out, _ := s.ListExpenses(ctx)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) ListExpensesSince(_ context.Context, since time.Time) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) UpdateExpense(_ context.Context, id string, patch core.ExpenseUpdate) (*core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if patch.Category != nil {
			s.items[i].Category = *patch.Category
		}
		if patch.Amount != nil {
			s.items[i].Amount = *patch.Amount
		}
		if patch.Date != nil {
			s.items[i].Date = *patch.Date
		}
		updated := s.items[i]
		return &updated, nil
	}
	return nil, storage.ErrNotFound
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }
