package stats

import (
	"context"
	"sync"
)

// MemoryRepo stores user stats in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]UserStats
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]UserStats)}
}

// Get returns the stats row for a user.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (UserStats, error) {
	if err := ctx.Err(); err != nil {
		return UserStats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats, ok := r.byUser[userID]
	if !ok {
		return UserStats{}, ErrNotFound
	}
	return stats, nil
}

// Upsert stores the stats row.
func (r *MemoryRepo) Upsert(ctx context.Context, stats UserStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[stats.UserID] = stats
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
