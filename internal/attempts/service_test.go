package attempts

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnanything-backend/internal/quizzes"
)

func seedQuiz(t *testing.T, repo quizzes.Repo) quizzes.Quiz {
	t.Helper()
	correct := []int{0, 1, 1, 3, 2}
	questions := make([]quizzes.Question, len(correct))
	for i, answer := range correct {
		questions[i] = quizzes.Question{
			Question:      "Question text",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: answer,
		}
	}
	quiz := quizzes.Quiz{
		ID:         "quiz-1",
		DocumentID: "doc-1",
		UserID:     "user-1",
		Title:      "Seeded Quiz",
		Questions:  questions,
		Difficulty: quizzes.DifficultyMedium,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

type recordedCall struct {
	userID string
	score  int
	total  int
}

type stubStats struct {
	calls []recordedCall
}

func (s *stubStats) RecordQuizCompleted(ctx context.Context, userID string, score, totalQuestions int) {
	s.calls = append(s.calls, recordedCall{userID: userID, score: score, total: totalQuestions})
}

func newTestService(t *testing.T) (*Service, *stubStats) {
	t.Helper()
	quizRepo := quizzes.NewMemoryRepo()
	seedQuiz(t, quizRepo)
	stats := &stubStats{}
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Quizzes: quizRepo,
		Stats:   stats,
	}
	return svc, stats
}

func TestSubmitComputesScoreServerSide(t *testing.T) {
	svc, stats := newTestService(t)

	attempt, err := svc.Submit(context.Background(), "user-1", "quiz-1", []int{0, 1, 2, 3, 0})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if attempt.Score != 3 {
		t.Fatalf("expected score 3, got %d", attempt.Score)
	}
	if attempt.TotalQuestions != 5 {
		t.Fatalf("expected 5 total questions, got %d", attempt.TotalQuestions)
	}
	if attempt.ID == "" {
		t.Fatal("expected attempt ID")
	}

	if len(stats.calls) != 1 {
		t.Fatalf("expected 1 stats call, got %d", len(stats.calls))
	}
	if stats.calls[0].score != 3 || stats.calls[0].total != 5 {
		t.Fatalf("stats got score=%d total=%d", stats.calls[0].score, stats.calls[0].total)
	}
}

func TestSubmitPerfectScore(t *testing.T) {
	svc, _ := newTestService(t)

	attempt, err := svc.Submit(context.Background(), "user-1", "quiz-1", []int{0, 1, 1, 3, 2})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if attempt.Score != 5 {
		t.Fatalf("expected score 5, got %d", attempt.Score)
	}
}

func TestSubmitRejectsAnswerCountMismatch(t *testing.T) {
	svc, stats := newTestService(t)

	_, err := svc.Submit(context.Background(), "user-1", "quiz-1", []int{0, 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(stats.calls) != 0 {
		t.Fatal("stats must not be updated on rejected submit")
	}
}

func TestSubmitRejectsOutOfRangeAnswer(t *testing.T) {
	svc, _ := newTestService(t)

	for _, answers := range [][]int{
		{0, 1, 1, 3, 4},
		{0, 1, 1, 3, -1},
	} {
		if _, err := svc.Submit(context.Background(), "user-1", "quiz-1", answers); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("answers %v: expected ErrInvalidInput, got %v", answers, err)
		}
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "user-1", "missing", []int{0})
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitScopedToQuizOwner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "user-2", "quiz-1", []int{0, 1, 1, 3, 2})
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound for other user, got %v", err)
	}
}

func TestListByQuizNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "user-1", "quiz-1", []int{0, 0, 0, 0, 0}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, "user-1", "quiz-1", []int{0, 1, 1, 3, 2}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	list, err := svc.ListByQuiz(ctx, "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("ListByQuiz: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(list))
	}
	if list[0].CompletedAt.Before(list[1].CompletedAt) {
		t.Fatal("expected newest-first ordering")
	}
}
