package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	// UpdateStatusIf moves a document to status `to` only if its current
	// status is one of `from`, and sets or clears the error message. It
	// returns ErrStatusConflict when the document exists but is in none of
	// the expected states.
	UpdateStatusIf(ctx context.Context, userID, documentID string, from []Status, to Status, errorMessage *string) error
	Delete(ctx context.Context, userID, documentID string) error
}
