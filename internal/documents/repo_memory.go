package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores documents in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Document)}
}

// Create stores the document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = doc
	return nil
}

// GetByID returns a document owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByUser returns the user's documents newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []Document
	for _, doc := range r.byID {
		if doc.UserID == userID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	if offset >= len(docs) {
		return []Document{}, nil
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

// UpdateStatusIf performs the conditional status transition under the lock.
func (r *MemoryRepo) UpdateStatusIf(ctx context.Context, userID, documentID string, from []Status, to Status, errorMessage *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}

	allowed := false
	for _, s := range from {
		if doc.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrStatusConflict
	}

	doc.Status = to
	doc.ErrorMessage = errorMessage
	r.byID[documentID] = doc
	return nil
}

// Delete removes the document row.
func (r *MemoryRepo) Delete(ctx context.Context, userID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, documentID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
