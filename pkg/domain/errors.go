package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrQuestionNotFound is returned when a question code is absent from the graph.
var ErrQuestionNotFound = errors.New("question not found")
