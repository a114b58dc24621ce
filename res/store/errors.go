package store

import "errors"

var (
	ErrUniqueViolation = errors.New("store: duplicate key value violates unique constraint")
	ErrInvalidInput    = errors.New("store: invalid input")

	ErrQuoteNotFound   = errors.New("store: quote not found")
	ErrCleanerNotFound = errors.New("store: cleaner not found")

	// Workflow transition errors
	ErrInvalidStatusTransition = errors.New("store: invalid quote status transition")
)
