package attempts

import "errors"

var (
	ErrNotFound     = errors.New("attempt not found")
	ErrQuizNotFound = errors.New("quiz not found")
	ErrInvalidInput = errors.New("invalid input")
)
