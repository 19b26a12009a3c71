package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CategoryTotal is the summed amount for one lower-cased category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// CategoryTotals preserves first-seen category order, so the highest-category
// scan resolves ties the same way on every run: the category seen first wins.
type CategoryTotals []CategoryTotal

// MarshalJSON renders the totals as a JSON object with first-seen key order.
func (ct CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range ct {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the summed amount for a lower-cased category.
func (ct CategoryTotals) Get(category string) (float64, bool) {
	for _, t := range ct {
		if t.Category == category {
			return t.Amount, true
		}
	}
	return 0, false
}

// Summary aggregates the full record set.
type Summary struct {
	TotalSpent      float64        `json:"totalSpent"`
	TotalCount      int            `json:"totalCount"`
	ByCategory      CategoryTotals `json:"byCategory"`
	HighestCategory *string        `json:"highestCategory"`
	HighestAmount   float64        `json:"highestAmount"`
	FinalState      HabitState     `json:"finalState"`
	RiskScore       int            `json:"riskScore"`
}

// Summarize folds the records in store order: totals, per-category sums,
// the highest-spending category, and the habit state over the same order.
// HighestCategory stays nil when no records exist.
func Summarize(expenses []Expense) Summary {
	s := Summary{
		TotalCount: len(expenses),
		ByCategory: CategoryTotals{},
	}

	index := make(map[string]int)
	for _, e := range expenses {
		s.TotalSpent += e.Amount
		cat := strings.ToLower(e.Category)
		if i, ok := index[cat]; ok {
			s.ByCategory[i].Amount += e.Amount
		} else {
			index[cat] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: cat, Amount: e.Amount})
		}
	}

	for _, t := range s.ByCategory {
		if t.Amount > s.HighestAmount {
			s.HighestAmount = t.Amount
			cat := t.Category
			s.HighestCategory = &cat
		}
	}

	s.FinalState, s.RiskScore = EvaluateHabit(expenses)
	return s
}
