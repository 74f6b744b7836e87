package domain

import "errors"

var (
	// ErrNoQuestions is returned when the question bank has no rows.
	ErrNoQuestions = errors.New("no questions found")
	// ErrInvalidTierPolicy indicates a misconfigured tier threshold list.
	ErrInvalidTierPolicy = errors.New("invalid tier policy")
)
