package ai

import (
	"context"
	"errors"
)

// Provider abstracts AI generation backends. Concrete implementations live
// in subpackages; the active provider is chosen by configuration and
// injected at construction time.
type Provider interface {
	Name() string
	GenerateQuiz(ctx context.Context, input GenerateQuizInput) (GenerateQuizResult, error)
	GenerateStoryCards(ctx context.Context, input GenerateStoryCardsInput) (GenerateStoryCardsResult, error)
	GenerateSummary(ctx context.Context, input GenerateSummaryInput) (string, error)
	GenerateEmbedding(ctx context.Context, input GenerateEmbeddingInput) ([]float64, error)
}

// DocumentPayload carries raw document content for file-based generation.
type DocumentPayload struct {
	FileName  string
	MediaType string
	Data      []byte
}

// GenerateQuizInput captures the inputs for quiz generation. Either Document
// or Context must be set; Document wins when both are present.
type GenerateQuizInput struct {
	Document     *DocumentPayload
	Context      string
	NumQuestions int
	Difficulty   string
}

// QuizQuestion is one generated multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GenerateQuizResult is the structured quiz returned by a provider.
type GenerateQuizResult struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateStoryCardsInput captures the inputs for story-card generation.
type GenerateStoryCardsInput struct {
	Context  string
	NumCards int
}

// StoryCard is one generated story card.
type StoryCard struct {
	Headline     string `json:"headline"`
	Body         string `json:"body"`
	VisualPrompt string `json:"visualPrompt"`
	Order        int    `json:"order"`
}

// GenerateStoryCardsResult is the structured deck returned by a provider.
type GenerateStoryCardsResult struct {
	Title string      `json:"title"`
	Cards []StoryCard `json:"cards"`
}

// GenerateSummaryInput captures the inputs for summary generation.
type GenerateSummaryInput struct {
	Context   string
	MaxLength int
}

// GenerateEmbeddingInput captures the input for embedding generation.
type GenerateEmbeddingInput struct {
	Text string
}

// ErrNotImplemented is returned for capabilities a provider does not support.
var ErrNotImplemented = errors.New("capability not implemented")

// ErrNotConfigured is returned when no AI backend has been configured.
var ErrNotConfigured = errors.New("ai provider not configured")
