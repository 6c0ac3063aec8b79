package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// OptionsPerQuestion is the required number of answer options per question.
const OptionsPerQuestion = 4

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSON pulls a JSON payload out of model output that may wrap it in
// code fences or surrounding prose.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			return text[start : end+1]
		}
	}
	return strings.TrimSpace(text)
}

// ParseQuizJSON extracts, parses, and validates a quiz payload from raw model
// output. Parsing or validation failure is reported, never coerced.
func ParseQuizJSON(text string) (GenerateQuizResult, error) {
	var result GenerateQuizResult
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &result); err != nil {
		return GenerateQuizResult{}, fmt.Errorf("parse quiz JSON: %w", err)
	}
	if err := ValidateQuiz(result); err != nil {
		return GenerateQuizResult{}, err
	}
	return result, nil
}

// ValidateQuiz checks the structural invariants of a generated quiz: a
// non-empty title, at least one question, exactly four options per question,
// and an in-bounds correct-answer index.
func ValidateQuiz(result GenerateQuizResult) error {
	if strings.TrimSpace(result.Title) == "" {
		return fmt.Errorf("quiz title is empty")
	}
	if len(result.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range result.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: text is empty", i)
		}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d: expected %d options, got %d", i, OptionsPerQuestion, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct answer index %d out of range", i, q.CorrectAnswer)
		}
	}
	return nil
}
