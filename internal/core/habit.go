package core

import "strings"

// HabitState describes the spending habit after folding the expense history.
type HabitState string

const (
	StateStart    HabitState = "START"
	StateSafe     HabitState = "SAFE"
	StateModerate HabitState = "MODERATE"
	StateRisk     HabitState = "RISK"
)

var safeCategories = map[string]struct{}{
	"food":      {},
	"rent":      {},
	"savings":   {},
	"groceries": {},
	"medicine":  {},
	"fees":      {},
}

var moderateCategories = map[string]struct{}{
	"snacks":        {},
	"travel":        {},
	"coffee":        {},
	"entertainment": {},
}

var riskCategories = map[string]struct{}{
	"shopping": {},
	"binge":    {},
	"gaming":   {},
	"topup":    {},
	"impulse":  {},
	"luxury":   {},
}

// ClassifyCategory maps a category to its habit state. Matching is
// case-insensitive and unknown categories count as MODERATE, never SAFE.
func ClassifyCategory(category string) HabitState {
	c := strings.ToLower(category)
	if _, ok := safeCategories[c]; ok {
		return StateSafe
	}
	if _, ok := riskCategories[c]; ok {
		return StateRisk
	}
	if _, ok := moderateCategories[c]; ok {
		return StateModerate
	}
	return StateModerate
}

// EvaluateHabit folds the history in order from START. Each record replaces
// the state, so the last record decides the outcome.
func EvaluateHabit(expenses []Expense) (HabitState, int) {
	state := StateStart
	for _, e := range expenses {
		state = ClassifyCategory(e.Category)
	}
	return state, state.RiskScore()
}

// RiskScore maps the state to a numeric score: START and SAFE rate 1,
// MODERATE 2, RISK 3.
func (s HabitState) RiskScore() int {
	switch s {
	case StateModerate:
		return 2
	case StateRisk:
		return 3
	default:
		return 1
	}
}
