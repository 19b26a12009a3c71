package amqp

import (
	"testing"
	"time"
)

func TestExpenseEventJSONRoundTrip(t *testing.T) {
	evt := NewExpenseEvent(EventExpenseCreated, "abc-123")

	data, err := evt.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := ExpenseEventFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Event != EventExpenseCreated {
		t.Errorf("event = %q, want %q", got.Event, EventExpenseCreated)
	}
	if got.ExpenseID != "abc-123" {
		t.Errorf("expenseId = %q, want abc-123", got.ExpenseID)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestNewExpenseEventTimestampUTC(t *testing.T) {
	evt := NewExpenseEvent(EventExpenseDeleted, "x")
	if evt.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp location = %v, want UTC", evt.Timestamp.Location())
	}
}

func TestExpenseEventFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte("not json")); err == nil {
		t.Error("invalid payload should return an error")
	}
}
