package domain

import "errors"

var (
	// ErrMatchNotFound is returned when a match id does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInvalidMatchID is returned when a match id is not a positive integer.
	ErrInvalidMatchID = errors.New("invalid match id")
)
