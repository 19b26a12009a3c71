package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried by ExpenseEvent. The worker only needs to know that the
// expense set changed, it re-reads the full history from the store.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is a lightweight change notification. It carries the expense ID
// and event kind, not the record itself.
type ExpenseEvent struct {
	Event     string    `json:"event"`
	ExpenseID string    `json:"expenseId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(event, expenseID string) *ExpenseEvent {
	return &ExpenseEvent{
		Event:     event,
		ExpenseID: expenseID,
		Timestamp: time.Now().UTC(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var evt ExpenseEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
