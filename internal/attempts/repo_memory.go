package attempts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores attempts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Attempt
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Attempt)}
}

// Create stores the attempt.
func (r *MemoryRepo) Create(ctx context.Context, attempt Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[attempt.ID] = attempt
	return nil
}

// ListByQuiz returns the user's attempts on a quiz, newest first.
func (r *MemoryRepo) ListByQuiz(ctx context.Context, userID, quizID string) ([]Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Attempt{}
	for _, attempt := range r.byID {
		if attempt.UserID == userID && attempt.QuizID == quizID {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

// ListByUser returns the user's attempts newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Attempt
	for _, attempt := range r.byID {
		if attempt.UserID == userID {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})

	if offset >= len(out) {
		return []Attempt{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
