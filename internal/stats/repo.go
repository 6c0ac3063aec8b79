package stats

import "context"

// Repo defines persistence operations for user stats.
type Repo interface {
	Get(ctx context.Context, userID string) (UserStats, error)
	Upsert(ctx context.Context, stats UserStats) error
}
