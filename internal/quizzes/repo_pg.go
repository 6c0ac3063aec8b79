package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Questions are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new quiz row.
func (r *PGRepo) Create(ctx context.Context, quiz Quiz) error {
	const query = `
INSERT INTO quizzes (id, document_id, user_id, title, questions, difficulty, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		quiz.ID,
		quiz.DocumentID,
		quiz.UserID,
		quiz.Title,
		questions,
		string(quiz.Difficulty),
		quiz.CreatedAt,
	)
	return err
}

// GetByID returns a quiz owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, quizID string) (Quiz, error) {
	const query = `
SELECT id, document_id, user_id, title, questions, difficulty, created_at
FROM quizzes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, quizID, userID)
	quiz, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	return quiz, nil
}

// ListByDocument returns a document's quizzes newest-first.
func (r *PGRepo) ListByDocument(ctx context.Context, userID, documentID string) ([]Quiz, error) {
	const query = `
SELECT id, document_id, user_id, title, questions, difficulty, created_at
FROM quizzes
WHERE document_id = $1 AND user_id = $2
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, documentID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuizzes(rows)
}

// ListByUser returns the user's quizzes newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Quiz, error) {
	const query = `
SELECT id, document_id, user_id, title, questions, difficulty, created_at
FROM quizzes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuizzes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanQuiz maps a quizzes row to the domain type, decoding the questions
// JSONB column explicitly.
func scanQuiz(row rowScanner) (Quiz, error) {
	var (
		quiz       Quiz
		questions  []byte
		difficulty string
	)
	if err := row.Scan(
		&quiz.ID,
		&quiz.DocumentID,
		&quiz.UserID,
		&quiz.Title,
		&questions,
		&difficulty,
		&quiz.CreatedAt,
	); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	quiz.Difficulty = Difficulty(difficulty)
	return quiz, nil
}

func collectQuizzes(rows *sql.Rows) ([]Quiz, error) {
	out := []Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
