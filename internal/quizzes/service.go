package quizzes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service exposes quiz reads and persists generated quizzes.
type Service struct {
	Repo Repo
}

// Create persists a generated quiz and returns it with identity and
// timestamp assigned.
func (s *Service) Create(ctx context.Context, quiz Quiz) (Quiz, error) {
	if strings.TrimSpace(quiz.DocumentID) == "" || strings.TrimSpace(quiz.UserID) == "" {
		return Quiz{}, fmt.Errorf("%w: document and user are required", ErrInvalidInput)
	}
	if len(quiz.Questions) == 0 {
		return Quiz{}, fmt.Errorf("%w: quiz has no questions", ErrInvalidInput)
	}
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = DifficultyMedium
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

// Get returns a quiz owned by the user.
func (s *Service) Get(ctx context.Context, userID, quizID string) (Quiz, error) {
	if strings.TrimSpace(quizID) == "" {
		return Quiz{}, fmt.Errorf("%w: quiz id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, quizID)
}

// ListByDocument returns all quizzes generated for a document, newest first.
func (s *Service) ListByDocument(ctx context.Context, userID, documentID string) ([]Quiz, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.Repo.ListByDocument(ctx, userID, documentID)
}

// ListByUser returns the user's quizzes newest-first with clamped paging.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Quiz, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
