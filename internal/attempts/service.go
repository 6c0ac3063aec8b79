package attempts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"learnanything-backend/internal/ai"
	"learnanything-backend/internal/quizzes"
	"learnanything-backend/internal/shared/metrics"
	"learnanything-backend/internal/shared/telemetry"
)

// StatsRecorder receives study activity as it happens. Implemented by the
// stats service; a nil recorder disables stats tracking.
type StatsRecorder interface {
	RecordQuizCompleted(ctx context.Context, userID string, score, totalQuestions int)
}

// Service scores and records quiz attempts.
type Service struct {
	Repo    Repo
	Quizzes quizzes.Repo
	Stats   StatsRecorder
}

// Submit scores the given answers against the quiz and records the attempt.
// The score is computed here from the stored correct answers; clients never
// supply it.
func (s *Service) Submit(ctx context.Context, userID, quizID string, answers []int) (Attempt, error) {
	quiz, err := s.Quizzes.GetByID(ctx, userID, quizID)
	if err != nil {
		if errors.Is(err, quizzes.ErrNotFound) {
			return Attempt{}, ErrQuizNotFound
		}
		return Attempt{}, err
	}

	if len(answers) != len(quiz.Questions) {
		return Attempt{}, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidInput, len(quiz.Questions), len(answers))
	}
	for i, answer := range answers {
		if answer < 0 || answer >= ai.OptionsPerQuestion {
			return Attempt{}, fmt.Errorf("%w: answer %d out of range", ErrInvalidInput, i)
		}
	}

	score := 0
	for i, question := range quiz.Questions {
		if answers[i] == question.CorrectAnswer {
			score++
		}
	}

	attempt := Attempt{
		ID:             uuid.NewString(),
		QuizID:         quiz.ID,
		UserID:         userID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CompletedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, attempt); err != nil {
		return Attempt{}, err
	}

	metrics.IncAttemptRecorded()
	telemetry.Info("attempt.recorded", map[string]any{
		"quiz_id":         quiz.ID,
		"score":           score,
		"total_questions": attempt.TotalQuestions,
	})

	if s.Stats != nil {
		s.Stats.RecordQuizCompleted(ctx, userID, score, attempt.TotalQuestions)
	}
	return attempt, nil
}

// ListByQuiz returns the user's attempts on a quiz, newest first. The quiz
// must exist and belong to the user.
func (s *Service) ListByQuiz(ctx context.Context, userID, quizID string) ([]Attempt, error) {
	if _, err := s.Quizzes.GetByID(ctx, userID, quizID); err != nil {
		if errors.Is(err, quizzes.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return s.Repo.ListByQuiz(ctx, userID, quizID)
}

// ListByUser returns the user's attempt history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
