package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRange indicates a start date after its end date.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrInvalidCellKey indicates a malformed worker/day cell key.
	ErrInvalidCellKey = errors.New("invalid cell key")
)
