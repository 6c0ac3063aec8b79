package attempts

import "time"

// Attempt is one completed run through a quiz. Answers holds the chosen
// option index per question, in question order. Score is computed
// server-side when the attempt is submitted and never changes afterwards.
type Attempt struct {
	ID             string
	QuizID         string
	UserID         string
	Answers        []int
	Score          int
	TotalQuestions int
	CompletedAt    time.Time
}
