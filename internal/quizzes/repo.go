package quizzes

import "context"

// Repo defines persistence operations for quizzes.
type Repo interface {
	Create(ctx context.Context, quiz Quiz) error
	GetByID(ctx context.Context, userID, quizID string) (Quiz, error)
	ListByDocument(ctx context.Context, userID, documentID string) ([]Quiz, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Quiz, error)
}
