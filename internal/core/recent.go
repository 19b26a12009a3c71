package core

import "time"

// RecentDays is the length of the trailing activity window, today included.
const RecentDays = 7

const dayKeyFormat = "2006-01-02"

// DayKey returns the UTC calendar-day key (YYYY-MM-DD) for t. Bucketing is
// always done in UTC so day boundaries do not move with the deployment
// timezone.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyFormat)
}

// WindowStart returns midnight UTC of the oldest day in the trailing window
// ending at now.
func WindowStart(now time.Time) time.Time {
	u := now.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(RecentDays - 1))
}

// RecentActivity is a fixed-length day-bucketed series, oldest day first and
// today last. Labels and Values are parallel.
type RecentActivity struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BucketRecent buckets the given records by UTC calendar day over the window
// ending at now. Days without records get a zero value; the output always has
// exactly RecentDays entries.
func BucketRecent(now time.Time, expenses []Expense) RecentActivity {
	byDay := make(map[string]float64, len(expenses))
	for _, e := range expenses {
		byDay[DayKey(e.Date)] += e.Amount
	}

	act := RecentActivity{
		Labels: make([]string, 0, RecentDays),
		Values: make([]float64, 0, RecentDays),
	}
	today := now.UTC()
	for i := RecentDays - 1; i >= 0; i-- {
		key := DayKey(today.AddDate(0, 0, -i))
		act.Labels = append(act.Labels, key)
		act.Values = append(act.Values, byDay[key])
	}
	return act
}
