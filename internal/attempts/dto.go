package attempts

import "time"

// SubmitRequest is the payload for submitting a completed quiz.
type SubmitRequest struct {
	Answers []int `json:"answers"`
}

// AttemptResponse is the outward-facing representation of an attempt.
type AttemptResponse struct {
	AttemptID      string    `json:"attemptId"`
	QuizID         string    `json:"quizId"`
	Answers        []int     `json:"answers"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

func toResponse(attempt Attempt) AttemptResponse {
	return AttemptResponse{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		Answers:        attempt.Answers,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CompletedAt:    attempt.CompletedAt,
	}
}
