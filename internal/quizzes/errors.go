package quizzes

import "errors"

var (
	ErrNotFound     = errors.New("quiz not found")
	ErrInvalidInput = errors.New("invalid input")
)
