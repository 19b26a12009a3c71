package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Expense is a single persisted spending record.
	Expense struct {
		ID       string    `json:"id"`
		Category string    `json:"category"`
		Amount   float64   `json:"amount"`
		Date     time.Time `json:"date"`
	}

	// ExpenseUpdate carries the fields of a partial update. A nil field
	// keeps the stored value.
	ExpenseUpdate struct {
		Category *string
		Amount   *float64
		Date     *time.Time
	}
)

var (
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
)

// Validate checks the fields required at creation time. The amount must be
// strictly positive: a zero amount counts as missing.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrMissingCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsEmpty reports whether the update would change nothing.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Category == nil && u.Amount == nil && u.Date == nil
}
