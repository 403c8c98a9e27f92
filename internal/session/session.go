package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itaybre/milim/internal/exercise"
	"github.com/itaybre/milim/internal/history"
)

// RetryCap is how many times one exercise is re-queued after wrong
// answers before the session moves on for good.
const RetryCap = 2

// ErrSessionComplete is returned by Submit once the queue is drained.
var ErrSessionComplete = errors.New("session: already complete")

// Session walks a built queue one exercise at a time. Wrong answers
// re-queue a non-novel copy of the card at the end; completion counts
// only novel exercises so retries never inflate progress.
type Session struct {
	ID      string
	Started time.Time

	queue      []*exercise.Exercise
	index      int
	novelTotal int
	novelDone  int
	attempts   int
	correct    int
	retries    int
	words      map[string]*WordResult
}

// NewSession wraps a built queue.
func NewSession(queue []*exercise.Exercise, started time.Time) *Session {
	novel := 0
	for _, ex := range queue {
		if ex.Novel {
			novel++
		}
	}
	return &Session{
		ID:         uuid.NewString(),
		Started:    started,
		queue:      queue,
		novelTotal: novel,
		words:      make(map[string]*WordResult),
	}
}

// Current returns the exercise awaiting an answer, or nil when the
// session is complete.
func (s *Session) Current() *exercise.Exercise {
	if s.index >= len(s.queue) {
		return nil
	}
	return s.queue[s.index]
}

// Done reports whether every queued exercise has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.queue)
}

// Progress returns novel exercises completed and planned.
func (s *Session) Progress() (done, total int) {
	return s.novelDone, s.novelTotal
}

// Submit grades the selected option against the current exercise and
// advances the queue. It returns the attempt record for the caller to
// feed back into the engine, plus whether the answer was correct.
func (s *Session) Submit(optionID string, duration time.Duration, hintUsed bool) (history.Attempt, bool, error) {
	ex := s.Current()
	if ex == nil {
		return history.Attempt{}, false, ErrSessionComplete
	}

	correct, found := false, false
	for _, o := range ex.Options {
		if o.ID == optionID {
			correct, found = o.Correct, true
			break
		}
	}
	if !found {
		return history.Attempt{}, false, fmt.Errorf("session: option %q not in current exercise", optionID)
	}

	s.attempts++
	if correct {
		s.correct++
	}
	if ex.Novel {
		s.novelDone++
	} else {
		s.retries++
	}

	wr := s.words[ex.Word.ID]
	if wr == nil {
		wr = &WordResult{WordID: ex.Word.ID, Text: ex.Word.Text}
		s.words[ex.Word.ID] = wr
	}
	wr.Attempts++
	if correct {
		wr.Correct++
	}

	if !correct && ex.Retry < RetryCap {
		s.queue = append(s.queue, ex.CloneForRetry())
	}
	s.index++

	att := history.Attempt{
		WordID:         ex.Word.ID,
		FormatID:       ex.Format.ID,
		PromptModality: string(ex.Format.Prompt),
		AnswerModality: string(ex.Format.Answer),
		OptionID:       optionID,
		Correct:        correct,
		DurationMs:     int(duration.Milliseconds()),
		HintUsed:       hintUsed,
	}
	return att, correct, nil
}
