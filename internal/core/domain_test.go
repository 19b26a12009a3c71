package core

import (
	"errors"
	"testing"
	"time"
)

func TestExpenseValidate(t *testing.T) {
	good := Expense{Category: "food", Amount: 12.5, Date: time.Now()}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{"missing category", Expense{Amount: 10}, ErrMissingCategory},
		{"blank category", Expense{Category: "   ", Amount: 10}, ErrMissingCategory},
		{"zero amount", Expense{Category: "food"}, ErrInvalidAmount},
		{"negative amount", Expense{Category: "food", Amount: -1}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.e.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExpenseUpdateIsEmpty(t *testing.T) {
	if !(ExpenseUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	cat := "food"
	if (ExpenseUpdate{Category: &cat}).IsEmpty() {
		t.Error("update with category should not be empty")
	}
}
