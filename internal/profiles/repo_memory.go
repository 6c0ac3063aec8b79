package profiles

import (
	"context"
	"sync"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Profile)}
}

// Get returns the profile for a user.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.byUser[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// Upsert stores the profile.
func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[profile.UserID] = profile
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
