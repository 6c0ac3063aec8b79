package quizzes

import "time"

// QuizResponse is the outward-facing representation of a quiz.
type QuizResponse struct {
	QuizID        string     `json:"quizId"`
	DocumentID    string     `json:"documentId"`
	Title         string     `json:"title"`
	Questions     []Question `json:"questions"`
	QuestionCount int        `json:"questionCount"`
	Difficulty    string     `json:"difficulty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// QuizSummaryResponse omits the question bodies for list endpoints.
type QuizSummaryResponse struct {
	QuizID        string    `json:"quizId"`
	DocumentID    string    `json:"documentId"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toResponse(quiz Quiz) QuizResponse {
	return QuizResponse{
		QuizID:        quiz.ID,
		DocumentID:    quiz.DocumentID,
		Title:         quiz.Title,
		Questions:     quiz.Questions,
		QuestionCount: len(quiz.Questions),
		Difficulty:    string(quiz.Difficulty),
		CreatedAt:     quiz.CreatedAt,
	}
}

func toSummary(quiz Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		QuizID:        quiz.ID,
		DocumentID:    quiz.DocumentID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		Difficulty:    string(quiz.Difficulty),
		CreatedAt:     quiz.CreatedAt,
	}
}
