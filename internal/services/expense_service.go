// Package services holds the application layer between HTTP handlers and the
// store. It owns validation, event publication and the stats cache.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"habitcheck/internal/amqp"
	"habitcheck/internal/core"
	"habitcheck/internal/storage"
)

// EventPublisher notifies downstream consumers about expense changes.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, event, expenseID string) error
	Close() error
}

// ExpenseService handles expense CRUD. Event publication is best effort, a
// broker failure never fails the request.
type ExpenseService struct {
	store     storage.Store
	publisher EventPublisher
}

// NewExpenseService creates the service. publisher may be nil when no broker
// is configured.
func NewExpenseService(store storage.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

// CreateExpense validates and persists a new expense. A zero date defaults to
// the creation time.
func (s *ExpenseService) CreateExpense(ctx context.Context, e *core.Expense) error {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseCreated, e.ID)
	return nil
}

// ListExpenses returns all expenses, most recent date first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.ListExpensesByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial update. Returns storage.ErrNotFound when no
// record has the given id.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, patch core.ExpenseUpdate) (*core.Expense, error) {
	updated, err := s.store.UpdateExpense(ctx, id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseUpdated, id)
	return updated, nil
}

// DeleteExpense removes a record. Returns storage.ErrNotFound when no record
// has the given id.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseDeleted, id)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, event, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, event, id); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"event", event,
			"expenseId", id,
			"error", err)
	}
}

func (s *ExpenseService) Close() error {
	var errs []error
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
