package session

import (
	"sort"
	"time"
)

// WordResult aggregates a session's attempts for one word.
type WordResult struct {
	WordID   string
	Text     string
	Attempts int
	Correct  int
}

// Summary holds the figures shown when a session ends.
type Summary struct {
	SessionID string
	Planned   int
	Completed int
	Attempts  int
	Correct   int
	Retries   int
	Accuracy  float64
	Duration  time.Duration
	Words     []WordResult
}

// Summary builds the end-of-session report as of now.
func (s *Session) Summary(now time.Time) Summary {
	results := make([]WordResult, 0, len(s.words))
	for _, wr := range s.words {
		results = append(results, *wr)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].WordID < results[j].WordID
	})

	var accuracy float64
	if s.attempts > 0 {
		accuracy = float64(s.correct) / float64(s.attempts)
	}

	return Summary{
		SessionID: s.ID,
		Planned:   s.novelTotal,
		Completed: s.novelDone,
		Attempts:  s.attempts,
		Correct:   s.correct,
		Retries:   s.retries,
		Accuracy:  accuracy,
		Duration:  now.Sub(s.Started),
		Words:     results,
	}
}
