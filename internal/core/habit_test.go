package core

import "testing"

func TestClassifyCategory(t *testing.T) {
	cases := []struct {
		category string
		want     HabitState
	}{
		{"food", StateSafe},
		{"rent", StateSafe},
		{"savings", StateSafe},
		{"groceries", StateSafe},
		{"medicine", StateSafe},
		{"fees", StateSafe},
		{"snacks", StateModerate},
		{"travel", StateModerate},
		{"coffee", StateModerate},
		{"entertainment", StateModerate},
		{"shopping", StateRisk},
		{"binge", StateRisk},
		{"gaming", StateRisk},
		{"topup", StateRisk},
		{"impulse", StateRisk},
		{"luxury", StateRisk},
		// case-insensitive
		{"Food", StateSafe},
		{"FOOD", StateSafe},
		{"ShOpPiNg", StateRisk},
		// unknown categories default to moderate, never safe
		{"xyz", StateModerate},
		{"", StateModerate},
		{"utilities", StateModerate},
	}
	for _, tc := range cases {
		if got := ClassifyCategory(tc.category); got != tc.want {
			t.Errorf("ClassifyCategory(%q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

func TestEvaluateHabitLastRecordWins(t *testing.T) {
	cases := []struct {
		name       string
		categories []string
		wantState  HabitState
		wantScore  int
	}{
		{"empty", nil, StateStart, 1},
		{"single safe", []string{"food"}, StateSafe, 1},
		{"single risk", []string{"gaming"}, StateRisk, 3},
		{"safe then risk", []string{"food", "shopping"}, StateRisk, 3},
		{"risk then safe", []string{"shopping", "food"}, StateSafe, 1},
		{"mixed ends moderate", []string{"shopping", "rent", "coffee"}, StateModerate, 2},
		{"mixed ends unknown", []string{"food", "luxury", "whatever"}, StateModerate, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expenses := make([]Expense, len(tc.categories))
			for i, c := range tc.categories {
				expenses[i] = Expense{Category: c, Amount: 1}
			}
			state, score := EvaluateHabit(expenses)
			if state != tc.wantState {
				t.Errorf("state = %v, want %v", state, tc.wantState)
			}
			if score != tc.wantScore {
				t.Errorf("score = %d, want %d", score, tc.wantScore)
			}
			// the final state must equal the classification of the last
			// record alone
			if len(tc.categories) > 0 {
				if want := ClassifyCategory(tc.categories[len(tc.categories)-1]); state != want {
					t.Errorf("state = %v, want last-record classification %v", state, want)
				}
			}
		})
	}
}

func TestRiskScore(t *testing.T) {
	cases := []struct {
		state HabitState
		want  int
	}{
		{StateStart, 1},
		{StateSafe, 1},
		{StateModerate, 2},
		{StateRisk, 3},
	}
	for _, tc := range cases {
		if got := tc.state.RiskScore(); got != tc.want {
			t.Errorf("%v.RiskScore() = %d, want %d", tc.state, got, tc.want)
		}
	}
}
