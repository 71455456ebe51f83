package repositories

import "errors"

// Sentinel errors shared by every repository implementation.
var (
	ErrNotFound            = errors.New("document not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)
