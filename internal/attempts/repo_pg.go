package attempts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres. Answers are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new attempt row.
func (r *PGRepo) Create(ctx context.Context, attempt Attempt) error {
	const query = `
INSERT INTO quiz_attempts (id, quiz_id, user_id, answers, score, total_questions, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		attempt.ID,
		attempt.QuizID,
		attempt.UserID,
		answers,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.CompletedAt,
	)
	return err
}

// ListByQuiz returns the user's attempts on a quiz, newest first.
func (r *PGRepo) ListByQuiz(ctx context.Context, userID, quizID string) ([]Attempt, error) {
	const query = `
SELECT id, quiz_id, user_id, answers, score, total_questions, completed_at
FROM quiz_attempts
WHERE quiz_id = $1 AND user_id = $2
ORDER BY completed_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, quizID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttempts(rows)
}

// ListByUser returns the user's attempts newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attempt, error) {
	const query = `
SELECT id, quiz_id, user_id, answers, score, total_questions, completed_at
FROM quiz_attempts
WHERE user_id = $1
ORDER BY completed_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttempts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAttempt maps a quiz_attempts row to the domain type.
func scanAttempt(row rowScanner) (Attempt, error) {
	var (
		attempt Attempt
		answers []byte
	)
	if err := row.Scan(
		&attempt.ID,
		&attempt.QuizID,
		&attempt.UserID,
		&answers,
		&attempt.Score,
		&attempt.TotalQuestions,
		&attempt.CompletedAt,
	); err != nil {
		return Attempt{}, err
	}
	if err := json.Unmarshal(answers, &attempt.Answers); err != nil {
		return Attempt{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	return attempt, nil
}

func collectAttempts(rows *sql.Rows) ([]Attempt, error) {
	out := []Attempt{}
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, attempt)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
