package quizzes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleQuiz() Quiz {
	return Quiz{
		ID:         "quiz-1",
		DocumentID: "doc-1",
		UserID:     "user-1",
		Title:      "Cell Biology",
		Questions: []Question{
			{
				Question:      "Smallest unit of life?",
				Options:       []string{"Atom", "Cell", "Organ", "Tissue"},
				CorrectAnswer: 1,
				Explanation:   "The cell.",
			},
		},
		Difficulty: DifficultyMedium,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestPGRepoCreateMarshalsQuestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	quiz := sampleQuiz()
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}

	mock.ExpectExec("INSERT INTO quizzes").
		WithArgs(
			quiz.ID,
			quiz.DocumentID,
			quiz.UserID,
			quiz.Title,
			questions,
			"medium",
			quiz.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), quiz); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesQuestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	quiz := sampleQuiz()
	questions, _ := json.Marshal(quiz.Questions)

	rows := sqlmock.NewRows([]string{"id", "document_id", "user_id", "title", "questions", "difficulty", "created_at"}).
		AddRow(quiz.ID, quiz.DocumentID, quiz.UserID, quiz.Title, questions, "medium", quiz.CreatedAt)

	mock.ExpectQuery("SELECT id, document_id, user_id, title, questions").
		WithArgs(quiz.ID, quiz.UserID).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), quiz.UserID, quiz.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got.Questions))
	}
	if got.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("correct answer = %d", got.Questions[0].CorrectAnswer)
	}
	if got.Difficulty != DifficultyMedium {
		t.Fatalf("difficulty = %s", got.Difficulty)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, document_id, user_id, title, questions").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "user_id", "title", "questions", "difficulty", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
