package attempts

import "context"

// Repo defines persistence operations for quiz attempts.
type Repo interface {
	Create(ctx context.Context, attempt Attempt) error
	ListByQuiz(ctx context.Context, userID, quizID string) ([]Attempt, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attempt, error)
}
