package flashcard

import "errors"

// Sentinel errors of the scheduling core. Check with errors.Is.
var (
	// ErrInvalidRating is returned when a rating outside Again..Easy reaches
	// the review transition.
	ErrInvalidRating = errors.New("flashcard: invalid rating")

	// ErrScheduling is returned when the memory model cannot produce a valid
	// next state for a card. The card must be left unchanged.
	ErrScheduling = errors.New("flashcard: scheduling failed")
)
