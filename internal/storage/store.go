// Package storage provides durable expense record storage.
package storage

import (
	"context"
	"errors"
	"time"

	"habitcheck/internal/core"
)

// ErrNotFound reports that no record exists for the given id.
var ErrNotFound = errors.New("expense not found")

// Store is the port for expense persistence. Implementations own identity
// assignment: CreateExpense fills in the record id.
type Store interface {
	// CreateExpense persists a new record and assigns its id.
	CreateExpense(ctx context.Context, e *core.Expense) error

	// ListExpenses returns every record in insertion order.
	ListExpenses(ctx context.Context) ([]core.Expense, error)

	// ListExpensesByDateDesc returns every record, newest date first.
	ListExpensesByDateDesc(ctx context.Context) ([]core.Expense, error)

	// ListExpensesSince returns records with a date at or after since.
	ListExpensesSince(ctx context.Context, since time.Time) ([]core.Expense, error)

	// UpdateExpense applies a partial update and returns the updated
	// record, or ErrNotFound when the id does not exist.
	UpdateExpense(ctx context.Context, id string, patch core.ExpenseUpdate) (*core.Expense, error)

	// DeleteExpense removes a record, returning ErrNotFound when the id
	// does not exist.
	DeleteExpense(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
