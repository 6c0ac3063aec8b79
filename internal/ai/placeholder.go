package ai

import "context"

// Placeholder is a Provider used when no AI backend is configured. Every
// call fails, which surfaces as a generation failure on the document rather
// than a crash at startup.
type Placeholder struct{}

func (Placeholder) Name() string { return "placeholder" }

func (Placeholder) GenerateQuiz(ctx context.Context, input GenerateQuizInput) (GenerateQuizResult, error) {
	return GenerateQuizResult{}, ErrNotConfigured
}

func (Placeholder) GenerateStoryCards(ctx context.Context, input GenerateStoryCardsInput) (GenerateStoryCardsResult, error) {
	return GenerateStoryCardsResult{}, ErrNotConfigured
}

func (Placeholder) GenerateSummary(ctx context.Context, input GenerateSummaryInput) (string, error) {
	return "", ErrNotConfigured
}

func (Placeholder) GenerateEmbedding(ctx context.Context, input GenerateEmbeddingInput) ([]float64, error) {
	return nil, ErrNotConfigured
}

var _ Provider = Placeholder{}
