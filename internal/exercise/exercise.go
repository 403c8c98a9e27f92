// Package exercise materializes answerable flashcards: a word, a
// format, and a shuffled option set sized by the pair's option level.
package exercise

import (
	"slices"

	"github.com/itaybre/milim/internal/catalog"
)

// Option is one selectable answer. Word-backed options carry the word
// ID; letter options carry the literal letter as both ID and value.
type Option struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Image   string `json:"image,omitempty"`
	Audio   string `json:"audio,omitempty"`
	Letter  string `json:"letter,omitempty"`
	Correct bool   `json:"correct"`
}

// Exercise is one queued card: the word under test, the format it is
// drilled in, and the materialized options. Retried exercises are
// re-queued copies with Retry incremented and Novel cleared so they do
// not double-count toward session completion.
type Exercise struct {
	Word    catalog.Word
	Format  catalog.Format
	Options []Option
	Retry   int
	Novel   bool
}

// Pair returns the performance-tracking key for the exercise.
func (e *Exercise) Pair() catalog.Pair {
	return catalog.Pair{WordID: e.Word.ID, FormatID: e.Format.ID}
}

// CorrectOption returns the option flagged correct.
func (e *Exercise) CorrectOption() (Option, bool) {
	for _, o := range e.Options {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}

// PromptText returns the display form of the prompt side.
func (e *Exercise) PromptText() string {
	switch e.Format.Prompt {
	case catalog.ModalityTranslation:
		return e.Word.Translation
	case catalog.ModalityImage:
		return e.Word.Image
	case catalog.ModalityAudio:
		return e.Word.Audio
	case catalog.ModalityLetter:
		return e.Word.InitialLetter
	default:
		return e.Word.Text
	}
}

// CloneForRetry copies the exercise for another pass through the
// queue. The option set is preserved so the learner retries the same
// card.
func (e *Exercise) CloneForRetry() *Exercise {
	c := *e
	c.Options = slices.Clone(e.Options)
	c.Retry++
	c.Novel = false
	return &c
}
