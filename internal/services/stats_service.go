package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"habitcheck/internal/cache"
	"habitcheck/internal/core"
	"habitcheck/internal/storage"
)

const summaryCacheKey = "summary"

// StatsService computes the spending summary and the recent activity series.
// The summary is memoized until the next write or TTL expiry.
type StatsService struct {
	store storage.Store
	cache *cache.LRUCache[core.Summary]
}

// NewStatsService creates the service. summaryCache may be nil to disable
// memoization.
func NewStatsService(store storage.Store, summaryCache *cache.LRUCache[core.Summary]) *StatsService {
	return &StatsService{store: store, cache: summaryCache}
}

// Summary aggregates the full expense history. Records are folded in creation
// order so the most recently added expense decides the final habit state.
func (s *StatsService) Summary(ctx context.Context) (core.Summary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(summaryCacheKey); ok {
			slog.DebugContext(ctx, "Summary served from cache")
			return cached, nil
		}
	}

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list expenses for summary: %w", err)
	}

	summary := core.Summarize(expenses)
	if s.cache != nil {
		s.cache.Set(summaryCacheKey, summary)
	}
	return summary, nil
}

// Recent buckets the last seven days of spending into a day-by-day series.
func (s *StatsService) Recent(ctx context.Context, now time.Time) (core.RecentActivity, error) {
	expenses, err := s.store.ListExpensesSince(ctx, core.WindowStart(now))
	if err != nil {
		return core.RecentActivity{}, fmt.Errorf("list recent expenses: %w", err)
	}
	return core.BucketRecent(now, expenses), nil
}

// InvalidateSummary drops the cached summary. Called after every write.
func (s *StatsService) InvalidateSummary() {
	if s.cache != nil {
		s.cache.Delete(summaryCacheKey)
	}
}
