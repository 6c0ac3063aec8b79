package processing

import "fmt"

// FailureKind tags where in the pipeline a run failed. The kind drives the
// stored error message and metrics; callers can branch on it without string
// matching.
type FailureKind string

const (
	FailureCacheMiss   FailureKind = "cache_miss"
	FailureGeneration  FailureKind = "generation"
	FailureValidation  FailureKind = "validation"
	FailurePersistence FailureKind = "persistence"
)

// Failure is a pipeline error carrying its stage kind.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func newFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// userMessage is the message persisted on the document for display. It is
// stable per kind so clients can show a meaningful recovery hint.
func (f *Failure) userMessage() string {
	switch f.Kind {
	case FailureCacheMiss:
		return "source file is no longer available; please upload the document again"
	case FailureGeneration:
		return "quiz generation failed; please try again"
	case FailureValidation:
		return "quiz generation returned an unusable result; please try again"
	case FailurePersistence:
		return "failed to save the generated quiz; please try again"
	default:
		return "processing failed; please try again"
	}
}
