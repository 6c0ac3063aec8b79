package quizzes

import "time"

// Difficulty is the requested difficulty of a generated quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one multiple-choice question. Options are ordered and the
// correct-answer index is zero-based.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated set of questions tied to one document. Regeneration
// creates a new quiz rather than mutating an old one.
type Quiz struct {
	ID         string
	DocumentID string
	UserID     string
	Title      string
	Questions  []Question
	Difficulty Difficulty
	CreatedAt  time.Time
}
