package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnanything-backend/internal/ai"
	"learnanything-backend/internal/cache"
	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/quizzes"
)

type stubProvider struct {
	ai.Placeholder
	result ai.GenerateQuizResult
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) GenerateQuiz(ctx context.Context, input ai.GenerateQuizInput) (ai.GenerateQuizResult, error) {
	p.calls++
	if p.err != nil {
		return ai.GenerateQuizResult{}, p.err
	}
	return p.result, nil
}

func goodResult() ai.GenerateQuizResult {
	questions := make([]ai.QuizQuestion, 5)
	for i := range questions {
		questions[i] = ai.QuizQuestion{
			Question:      "Question text",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Explanation:   "Because.",
		}
	}
	return ai.GenerateQuizResult{Title: "Generated Quiz", Questions: questions}
}

type fixture struct {
	svc      *Service
	docs     *documents.MemoryRepo
	quizRepo *quizzes.MemoryRepo
	cache    *cache.Cache
	provider *stubProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	docs := documents.NewMemoryRepo()
	quizRepo := quizzes.NewMemoryRepo()
	c := cache.New(t.TempDir())
	provider := &stubProvider{result: goodResult()}

	svc := &Service{
		Docs:                docs,
		Quizzes:             &quizzes.Service{Repo: quizRepo},
		Cache:               c,
		Provider:            provider,
		DefaultNumQuestions: 5,
		DefaultDifficulty:   "medium",
	}
	return &fixture{svc: svc, docs: docs, quizRepo: quizRepo, cache: c, provider: provider}
}

func (f *fixture) seedDocument(t *testing.T, status documents.Status, cached bool) documents.Document {
	t.Helper()
	doc := documents.Document{
		ID:        "doc-1",
		UserID:    "user-1",
		Title:     "Biology Notes",
		FilePath:  "user-1/biology.pdf",
		Status:    status,
		SizeBytes: 42,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	if cached {
		if err := f.cache.Store(doc.ID, []byte("%PDF-1.4 fake")); err != nil {
			t.Fatalf("seed cache: %v", err)
		}
	}
	return doc
}

func TestProcessHappyPath(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, true)
	ctx := context.Background()

	quiz, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	if quiz.Difficulty != quizzes.DifficultyMedium {
		t.Fatalf("expected medium difficulty, got %s", quiz.Difficulty)
	}

	got, err := f.docs.GetByID(ctx, doc.UserID, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != documents.StatusReady {
		t.Fatalf("expected status ready, got %s", got.Status)
	}
	if got.ErrorMessage != nil {
		t.Fatalf("expected nil error message, got %q", *got.ErrorMessage)
	}

	stored, err := f.quizRepo.ListByDocument(ctx, doc.UserID, doc.ID)
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored quiz, got %d", len(stored))
	}
}

func TestProcessCacheMissMarksError(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, false)
	ctx := context.Background()

	_, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var failure *Failure
	if !errors.As(err, &failure) || failure.Kind != FailureCacheMiss {
		t.Fatalf("expected cache_miss failure, got %v", err)
	}

	got, _ := f.docs.GetByID(ctx, doc.UserID, doc.ID)
	if got.Status != documents.StatusError {
		t.Fatalf("expected status error, got %s", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage == "" {
		t.Fatal("expected stored error message")
	}
	if f.provider.calls != 0 {
		t.Fatalf("provider should not be called on cache miss, got %d calls", f.provider.calls)
	}
}

func TestProcessRejectsConcurrentRun(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusProcessing, true)

	_, err := f.svc.Process(context.Background(), doc.UserID, doc.ID, Options{})
	if !errors.Is(err, documents.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
}

func TestProcessGenerationFailureMarksError(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, true)
	f.provider.err = errors.New("model unavailable")
	ctx := context.Background()

	_, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{})
	var failure *Failure
	if !errors.As(err, &failure) || failure.Kind != FailureGeneration {
		t.Fatalf("expected generation failure, got %v", err)
	}

	got, _ := f.docs.GetByID(ctx, doc.UserID, doc.ID)
	if got.Status != documents.StatusError {
		t.Fatalf("expected status error, got %s", got.Status)
	}
}

func TestProcessValidationFailureMarksError(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, true)
	bad := goodResult()
	bad.Questions[0].CorrectAnswer = 7
	f.provider.result = bad
	ctx := context.Background()

	_, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{})
	var failure *Failure
	if !errors.As(err, &failure) || failure.Kind != FailureValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}

	got, _ := f.docs.GetByID(ctx, doc.UserID, doc.ID)
	if got.Status != documents.StatusError {
		t.Fatalf("expected status error, got %s", got.Status)
	}

	stored, _ := f.quizRepo.ListByDocument(ctx, doc.UserID, doc.ID)
	if len(stored) != 0 {
		t.Fatalf("invalid quiz must not be persisted, found %d", len(stored))
	}
}

func TestProcessRetryAfterErrorSucceeds(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, true)
	ctx := context.Background()

	f.provider.err = errors.New("transient")
	if _, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{}); err == nil {
		t.Fatal("expected first run to fail")
	}

	f.provider.err = nil
	if _, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{}); err != nil {
		t.Fatalf("retry: %v", err)
	}

	got, _ := f.docs.GetByID(ctx, doc.UserID, doc.ID)
	if got.Status != documents.StatusReady {
		t.Fatalf("expected status ready after retry, got %s", got.Status)
	}
	if got.ErrorMessage != nil {
		t.Fatalf("error message should be cleared, got %q", *got.ErrorMessage)
	}
}

func TestProcessRegenerationAppendsQuiz(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, documents.StatusUploaded, true)
	ctx := context.Background()

	if _, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := f.svc.Process(ctx, doc.UserID, doc.ID, Options{NumQuestions: 3, Difficulty: "hard"}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	stored, err := f.quizRepo.ListByDocument(ctx, doc.UserID, doc.ID)
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 quizzes after regeneration, got %d", len(stored))
	}
}

func TestStartUnknownDocument(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Start(context.Background(), "user-1", "missing", Options{})
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
