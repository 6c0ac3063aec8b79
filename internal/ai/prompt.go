package ai

import (
	"fmt"
	"strings"
)

const quizSchemaExample = `{
  "title": "Quiz title based on the document topic",
  "questions": [
    {
      "question": "The question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Brief explanation of why this is correct"
    }
  ]
}`

// BuildQuizPrompt renders the shared quiz-generation instructions. When
// contextText is empty the prompt assumes the document travels alongside as
// a file attachment.
func BuildQuizPrompt(numQuestions int, difficulty, contextText string) string {
	var b strings.Builder
	if contextText != "" {
		b.WriteString("You are an expert educator. Based on the following content, generate a quiz to test comprehension.\n\n")
		b.WriteString("Content:\n")
		b.WriteString(contextText)
		b.WriteString("\n\n")
	} else {
		b.WriteString("You are an expert educator. Analyze this PDF document and generate a quiz to test comprehension.\n\n")
	}
	fmt.Fprintf(&b, `Requirements:
- Generate exactly %d multiple-choice questions
- Difficulty level: %s
- Each question should have exactly %d options
- Questions should cover the most important concepts in the document
- Explanations should be concise but educational

You MUST respond with ONLY valid JSON in this exact structure, no other text:
%s`, numQuestions, difficulty, OptionsPerQuestion, quizSchemaExample)
	return b.String()
}
