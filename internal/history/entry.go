package history

import (
	"time"

	"github.com/itaybre/milim/internal/catalog"
)

// Entry is one recorded attempt in the append-only practice log.
// Entries are never mutated or deleted except by an explicit reset;
// every derived model can be rebuilt by replaying them in order.
//
// FormatID may name a deprecated format: old entries stay parseable
// even after a format is retired from scheduling.
type Entry struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	WordID         string    `json:"wordId"`
	FormatID       string    `json:"formatId"`
	PromptModality string    `json:"promptModality"`
	AnswerModality string    `json:"answerModality"`
	OptionID       string    `json:"optionId"`
	Correct        bool      `json:"correct"`
	DurationMs     int       `json:"durationMs"`
	HintUsed       bool      `json:"hintUsed"`
}

// Pair returns the scheduling key for the entry.
func (e Entry) Pair() catalog.Pair {
	return catalog.Pair{WordID: e.WordID, FormatID: e.FormatID}
}

// Attempt describes a graded answer before it is stamped and appended
// to the log. The engine assigns the entry ID and timestamp.
type Attempt struct {
	WordID         string
	FormatID       string
	PromptModality string
	AnswerModality string
	OptionID       string
	Correct        bool
	DurationMs     int
	HintUsed       bool
}
