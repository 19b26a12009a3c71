package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expenses := []Expense{
		{Category: "food", Amount: 10, Date: day},
		{Category: "shopping", Amount: 5, Date: day},
	}

	s := Summarize(expenses)

	if s.TotalSpent != 15 {
		t.Errorf("TotalSpent = %v, want 15", s.TotalSpent)
	}
	if s.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", s.TotalCount)
	}
	if amt, ok := s.ByCategory.Get("food"); !ok || amt != 10 {
		t.Errorf("ByCategory[food] = %v (present=%v), want 10", amt, ok)
	}
	if amt, ok := s.ByCategory.Get("shopping"); !ok || amt != 5 {
		t.Errorf("ByCategory[shopping] = %v (present=%v), want 5", amt, ok)
	}
	if s.HighestCategory == nil || *s.HighestCategory != "food" {
		t.Errorf("HighestCategory = %v, want food", s.HighestCategory)
	}
	if s.HighestAmount != 10 {
		t.Errorf("HighestAmount = %v, want 10", s.HighestAmount)
	}
	// last record wins
	if s.FinalState != StateRisk {
		t.Errorf("FinalState = %v, want %v", s.FinalState, StateRisk)
	}
	if s.RiskScore != 3 {
		t.Errorf("RiskScore = %d, want 3", s.RiskScore)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	if s.TotalSpent != 0 || s.TotalCount != 0 {
		t.Errorf("totals = (%v, %d), want (0, 0)", s.TotalSpent, s.TotalCount)
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("ByCategory has %d entries, want 0", len(s.ByCategory))
	}
	if s.HighestCategory != nil {
		t.Errorf("HighestCategory = %v, want nil", *s.HighestCategory)
	}
	if s.HighestAmount != 0 {
		t.Errorf("HighestAmount = %v, want 0", s.HighestAmount)
	}
	if s.FinalState != StateStart || s.RiskScore != 1 {
		t.Errorf("state = (%v, %d), want (START, 1)", s.FinalState, s.RiskScore)
	}
}

func TestSummarizeLowercasesAndMergesCategories(t *testing.T) {
	expenses := []Expense{
		{Category: "Food", Amount: 3},
		{Category: "FOOD", Amount: 4},
		{Category: "food", Amount: 5},
	}
	s := Summarize(expenses)

	if len(s.ByCategory) != 1 {
		t.Fatalf("ByCategory has %d entries, want 1", len(s.ByCategory))
	}
	if amt, _ := s.ByCategory.Get("food"); amt != 12 {
		t.Errorf("ByCategory[food] = %v, want 12", amt)
	}
}

func TestSummarizeTieBreakFirstSeenWins(t *testing.T) {
	expenses := []Expense{
		{Category: "coffee", Amount: 7},
		{Category: "travel", Amount: 7},
	}
	s := Summarize(expenses)

	if s.HighestCategory == nil || *s.HighestCategory != "coffee" {
		t.Errorf("HighestCategory = %v, want first-seen coffee", s.HighestCategory)
	}
	if s.HighestAmount != 7 {
		t.Errorf("HighestAmount = %v, want 7", s.HighestAmount)
	}
}

func TestSummarizeCategorySumsMatchTotal(t *testing.T) {
	expenses := []Expense{
		{Category: "food", Amount: 1.5},
		{Category: "coffee", Amount: 2.25},
		{Category: "food", Amount: 3},
		{Category: "luxury", Amount: 10},
	}
	s := Summarize(expenses)

	var sum float64
	for _, ct := range s.ByCategory {
		sum += ct.Amount
	}
	if sum != s.TotalSpent {
		t.Errorf("category sums = %v, total = %v", sum, s.TotalSpent)
	}
}

func TestCategoryTotalsMarshalJSON(t *testing.T) {
	ct := CategoryTotals{
		{Category: "food", Amount: 10},
		{Category: "shopping", Amount: 5},
	}
	got, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"food":10,"shopping":5}`
	if string(got) != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}

	empty, err := json.Marshal(CategoryTotals{})
	if err != nil {
		t.Fatalf("marshal empty: %v", err)
	}
	if string(empty) != "{}" {
		t.Errorf("marshal empty = %s, want {}", empty)
	}
}

func TestSummaryMarshalJSONNullHighestCategory(t *testing.T) {
	got, err := json.Marshal(Summarize(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["highestCategory"]; !ok || v != nil {
		t.Errorf("highestCategory = %v, want null", v)
	}
	if v := decoded["finalState"]; v != "START" {
		t.Errorf("finalState = %v, want START", v)
	}
}
