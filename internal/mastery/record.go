package mastery

import (
	"time"

	"github.com/itaybre/milim/internal/catalog"
)

const (
	// RecentWindow is the number of most recent outcomes retained per pair.
	RecentWindow = 6

	// AccuracyThreshold is the recent-accuracy bar for mastery.
	AccuracyThreshold = 0.85

	// MinAttempts is the lifetime attempt floor for mastery. Without it
	// a single lucky answer would count as mastered.
	MinAttempts = 4
)

// Record accumulates lifetime and recent performance for one
// (word, format) pair.
type Record struct {
	Pair catalog.Pair

	// Attempts always equals Correct + Incorrect.
	Attempts  int
	Correct   int
	Incorrect int

	// Streak is signed: positive counts consecutive correct answers,
	// negative consecutive incorrect ones. A sign flip restarts the
	// magnitude at 1 (or -1) rather than carrying the old run.
	Streak int

	LastAttempt time.Time

	// Recent holds the latest outcomes, oldest first, capped at
	// RecentWindow. Older outcomes are evicted, never summarized.
	Recent []bool
}

// Update applies one graded outcome to the record.
func (r *Record) Update(correct bool, at time.Time) {
	r.Attempts++
	if correct {
		r.Correct++
		if r.Streak >= 0 {
			r.Streak++
		} else {
			r.Streak = 1
		}
	} else {
		r.Incorrect++
		if r.Streak <= 0 {
			r.Streak--
		} else {
			r.Streak = -1
		}
	}
	r.LastAttempt = at

	r.Recent = append(r.Recent, correct)
	if len(r.Recent) > RecentWindow {
		r.Recent = r.Recent[len(r.Recent)-RecentWindow:]
	}
}

// RecentAccuracy returns the share of correct answers over the bounded
// recent window. Zero when nothing has been attempted.
func (r *Record) RecentAccuracy() float64 {
	if r == nil || len(r.Recent) == 0 {
		return 0
	}
	correct := 0
	for _, c := range r.Recent {
		if c {
			correct++
		}
	}
	return float64(correct) / float64(len(r.Recent))
}

// LifetimeAccuracy returns Correct / Attempts. Zero when unattempted.
func (r *Record) LifetimeAccuracy() float64 {
	if r == nil || r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// Mastered reports whether the record meets the mastery gate: recent
// accuracy at or above AccuracyThreshold with at least MinAttempts
// lifetime attempts. The gate is recency-biased: a strong lifetime
// record loses mastery after a recent slump.
func (r *Record) Mastered() bool {
	if r == nil || r.Attempts == 0 {
		return false
	}
	return r.Attempts >= MinAttempts && r.RecentAccuracy() >= AccuracyThreshold
}
