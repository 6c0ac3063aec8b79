package quizzes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores quizzes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Quiz
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Quiz)}
}

// Create stores the quiz.
func (r *MemoryRepo) Create(ctx context.Context, quiz Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[quiz.ID] = quiz
	return nil
}

// GetByID returns a quiz owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, quizID string) (Quiz, error) {
	if err := ctx.Err(); err != nil {
		return Quiz{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.byID[quizID]
	if !ok || quiz.UserID != userID {
		return Quiz{}, ErrNotFound
	}
	return quiz, nil
}

// ListByDocument returns a document's quizzes newest-first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, userID, documentID string) ([]Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Quiz
	for _, quiz := range r.byID {
		if quiz.UserID == userID && quiz.DocumentID == documentID {
			out = append(out, quiz)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if out == nil {
		out = []Quiz{}
	}
	return out, nil
}

// ListByUser returns the user's quizzes newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Quiz
	for _, quiz := range r.byID {
		if quiz.UserID == userID {
			out = append(out, quiz)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Quiz{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
