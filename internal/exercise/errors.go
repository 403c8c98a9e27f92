package exercise

import "errors"

var (
	// ErrInsufficientDistractors means the catalog cannot supply enough
	// valid distractors for a pair at its requested option count. This
	// is a content defect: the session cannot render the card.
	ErrInsufficientDistractors = errors.New("exercise: insufficient distractors")

	// ErrNoInitialLetter means a letter-answer format was requested for
	// a word without a normalizable initial letter.
	ErrNoInitialLetter = errors.New("exercise: word has no usable initial letter")
)
