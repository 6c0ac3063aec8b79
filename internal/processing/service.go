package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnanything-backend/internal/ai"
	"learnanything-backend/internal/cache"
	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/extract"
	"learnanything-backend/internal/queue"
	"learnanything-backend/internal/quizzes"
	"learnanything-backend/internal/shared/metrics"
	"learnanything-backend/internal/shared/telemetry"
)

// StatsRecorder receives successful pipeline completions. A nil recorder
// disables stats tracking.
type StatsRecorder interface {
	RecordDocumentProcessed(ctx context.Context, userID string)
}

// Options tunes a single generation run. Zero values fall back to the
// service defaults.
type Options struct {
	NumQuestions int
	Difficulty   string
	ContextText  string
}

// Service runs the document processing pipeline: mark processing, read the
// cached source file, generate a quiz, validate it, persist it, mark ready.
// Any failure marks the document status error with a stored message. The
// conditional status update is the concurrency guard: only one run per
// document can hold the processing state at a time.
type Service struct {
	Docs     documents.Repo
	Quizzes  *quizzes.Service
	Cache    *cache.Cache
	Provider ai.Provider
	Stats    StatsRecorder

	// Queue, when set, moves pipeline runs to the worker process. Without
	// it runs execute in-process.
	Queue queue.Client

	DefaultNumQuestions int
	DefaultDifficulty   string
}

// startableStates are the statuses a run may begin from. Regenerating from
// ready appends a new quiz; retrying from error is the normal recovery path.
var startableStates = []documents.Status{
	documents.StatusUploaded,
	documents.StatusReady,
	documents.StatusError,
}

// Start begins an asynchronous run. The transition into processing happens
// synchronously so the caller observes the concurrency guard; the rest of
// the pipeline runs in the background, either on the queue worker or in an
// in-process goroutine.
func (s *Service) Start(ctx context.Context, userID, documentID string, opts Options) error {
	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.markProcessing(ctx, userID, doc.ID); err != nil {
		return err
	}

	if s.Queue != nil {
		msg := queue.Message{
			DocumentID:   doc.ID,
			UserID:       userID,
			NumQuestions: opts.NumQuestions,
			Difficulty:   opts.Difficulty,
			EnqueuedAt:   time.Now().UTC().Format(time.RFC3339),
			Version:      1,
		}
		sendErr := s.Queue.Send(ctx, msg)
		if sendErr == nil {
			return nil
		}
		// Fall through to the in-process path rather than losing the run.
		telemetry.Error("processing.enqueue", map[string]any{
			"document_id": doc.ID,
			"error":       sendErr.Error(),
		})
	}

	go func() {
		_, _ = s.run(context.Background(), userID, doc, opts)
	}()
	return nil
}

// Process runs the full pipeline synchronously, including the admission
// gate.
func (s *Service) Process(ctx context.Context, userID, documentID string, opts Options) (quizzes.Quiz, error) {
	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		return quizzes.Quiz{}, err
	}
	if err := s.markProcessing(ctx, userID, doc.ID); err != nil {
		return quizzes.Quiz{}, err
	}
	return s.run(ctx, userID, doc, opts)
}

// ProcessQueued runs the pipeline for a job that was admitted when it was
// enqueued. A document found outside the processing state (a redelivery
// after the visibility timeout, for instance) is re-admitted through the
// gate.
func (s *Service) ProcessQueued(ctx context.Context, userID, documentID string, opts Options) (quizzes.Quiz, error) {
	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		return quizzes.Quiz{}, err
	}
	if doc.Status != documents.StatusProcessing {
		if err := s.markProcessing(ctx, userID, doc.ID); err != nil {
			return quizzes.Quiz{}, err
		}
	}
	return s.run(ctx, userID, doc, opts)
}

// markProcessing is the admission gate. A document already in processing is
// rejected with documents.ErrStatusConflict; the earlier run owns the state.
func (s *Service) markProcessing(ctx context.Context, userID, documentID string) error {
	err := s.Docs.UpdateStatusIf(ctx, userID, documentID, startableStates, documents.StatusProcessing, nil)
	if err != nil {
		return err
	}
	logTransition(documentID, documents.StatusProcessing)
	return nil
}

func (s *Service) run(ctx context.Context, userID string, doc documents.Document, opts Options) (quiz quizzes.Quiz, err error) {
	started := time.Now()
	metrics.IncProcessingStarted()

	defer func() {
		if r := recover(); r != nil {
			err = newFailure(FailureGeneration, fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			s.fail(ctx, userID, doc.ID, err)
			return
		}
		metrics.IncProcessingCompleted()
		metrics.ObserveProcessingDurationMs(float64(time.Since(started).Milliseconds()))
		if s.Stats != nil {
			s.Stats.RecordDocumentProcessed(ctx, userID)
		}
	}()

	numQuestions := opts.NumQuestions
	if numQuestions <= 0 {
		numQuestions = s.DefaultNumQuestions
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = s.DefaultDifficulty
	}

	input := ai.GenerateQuizInput{
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
		Context:      opts.ContextText,
	}
	if opts.ContextText == "" {
		data, cacheErr := s.Cache.Retrieve(doc.ID)
		if cacheErr != nil {
			return quizzes.Quiz{}, newFailure(FailureCacheMiss, cacheErr)
		}
		input.Document = &ai.DocumentPayload{
			FileName:  doc.Title + ".pdf",
			MediaType: "application/pdf",
			Data:      data,
		}
		// Extracted text rides along for providers that take a textual
		// context instead of the raw file. Extraction failures are not
		// fatal while the file payload is available.
		if text, textErr := extract.Text(data); textErr == nil {
			input.Context = text
		}
	}

	result, genErr := s.Provider.GenerateQuiz(ctx, input)
	if genErr != nil {
		return quizzes.Quiz{}, newFailure(FailureGeneration, genErr)
	}
	if valErr := ai.ValidateQuiz(result); valErr != nil {
		return quizzes.Quiz{}, newFailure(FailureValidation, valErr)
	}

	title := result.Title
	if title == "" {
		title = "Quiz: " + doc.Title
	}
	questions := make([]quizzes.Question, 0, len(result.Questions))
	for _, q := range result.Questions {
		questions = append(questions, quizzes.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	quiz, createErr := s.Quizzes.Create(ctx, quizzes.Quiz{
		DocumentID: doc.ID,
		UserID:     userID,
		Title:      title,
		Questions:  questions,
		Difficulty: quizzes.Difficulty(difficulty),
	})
	if createErr != nil {
		return quizzes.Quiz{}, newFailure(FailurePersistence, createErr)
	}

	readyErr := s.Docs.UpdateStatusIf(ctx, userID, doc.ID,
		[]documents.Status{documents.StatusProcessing}, documents.StatusReady, nil)
	if readyErr != nil {
		return quizzes.Quiz{}, newFailure(FailurePersistence, readyErr)
	}
	logTransition(doc.ID, documents.StatusReady)

	telemetry.Info("document.processed", map[string]any{
		"document_id": doc.ID,
		"quiz_id":     quiz.ID,
		"questions":   len(quiz.Questions),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return quiz, nil
}

// fail marks the document status error with a user-facing message. The
// transition is conditional on processing so a concurrent delete or a lost
// race does not resurrect the row.
func (s *Service) fail(ctx context.Context, userID, documentID string, cause error) {
	metrics.IncProcessingFailed()

	message := "processing failed; please try again"
	kind := FailureKind("unknown")
	var failure *Failure
	if errors.As(cause, &failure) {
		message = failure.userMessage()
		kind = failure.Kind
	}

	err := s.Docs.UpdateStatusIf(ctx, userID, documentID,
		[]documents.Status{documents.StatusProcessing}, documents.StatusError, &message)
	if err != nil {
		telemetry.Error("document.fail_mark", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	} else {
		logTransition(documentID, documents.StatusError)
	}

	telemetry.Error("document.processing_failed", map[string]any{
		"document_id":  documentID,
		"failure_kind": string(kind),
		"error":        cause.Error(),
	})
}

func logTransition(documentID string, to documents.Status) {
	telemetry.Info("document.status", map[string]any{
		"document_id":       documentID,
		"status_transition": string(to),
	})
}
