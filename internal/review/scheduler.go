package review

import (
	"sort"
	"time"

	"github.com/itaybre/milim/internal/catalog"
)

// Entry holds the resurfacing schedule for one pair. The JSON shape is
// the persisted form: the pair is stored as two explicit ID fields.
type Entry struct {
	WordID        string    `json:"wordId"`
	FormatID      string    `json:"formatId"`
	IntervalIndex int       `json:"intervalIndex"`
	NextEligible  time.Time `json:"nextEligible"`
}

// Pair returns the scheduling key for the entry.
func (e *Entry) Pair() catalog.Pair {
	return catalog.Pair{WordID: e.WordID, FormatID: e.FormatID}
}

// Due reports whether the entry is at or past its eligibility time.
func (e *Entry) Due(now time.Time) bool {
	return !now.Before(e.NextEligible)
}

// OverdueDays returns how many days past eligible the entry is.
// Zero if not yet due.
func (e *Entry) OverdueDays(now time.Time) float64 {
	if now.Before(e.NextEligible) {
		return 0
	}
	return now.Sub(e.NextEligible).Hours() / 24.0
}

// Scheduler manages interval-ladder resurfacing for pairs. Mastered
// pairs climb the ladder and drop out of everyday selection until due;
// unmastered attempts walk the ladder back down. Only mastered pairs
// ever consult Due.
type Scheduler struct {
	entries map[catalog.Pair]*Entry
}

// NewScheduler creates a scheduler from persisted entries.
func NewScheduler(entries []Entry) *Scheduler {
	s := &Scheduler{entries: make(map[catalog.Pair]*Entry, len(entries))}
	for i := range entries {
		e := entries[i]
		if e.IntervalIndex < 0 {
			e.IntervalIndex = 0
		}
		if e.IntervalIndex > MaxIntervalIndex {
			e.IntervalIndex = MaxIntervalIndex
		}
		s.entries[e.Pair()] = &e
	}
	return s
}

// Observe updates the pair's schedule after an attempt: a mastered
// outcome climbs one interval step, an unmastered one walks back one.
// The next eligibility is always measured from now.
func (s *Scheduler) Observe(p catalog.Pair, mastered bool, now time.Time) *Entry {
	e := s.entries[p]
	if e == nil {
		e = &Entry{WordID: p.WordID, FormatID: p.FormatID}
		s.entries[p] = e
	}

	if mastered {
		e.IntervalIndex++
		if e.IntervalIndex > MaxIntervalIndex {
			e.IntervalIndex = MaxIntervalIndex
		}
	} else {
		e.IntervalIndex--
		if e.IntervalIndex < 0 {
			e.IntervalIndex = 0
		}
	}

	e.NextEligible = now.AddDate(0, 0, Intervals[e.IntervalIndex])
	return e
}

// Due reports whether the pair is eligible for resurfacing. Pairs with
// no schedule entry are always due.
func (s *Scheduler) Due(p catalog.Pair, now time.Time) bool {
	e := s.entries[p]
	if e == nil {
		return true
	}
	return e.Due(now)
}

// GetEntry returns the entry for a pair, or nil if not tracked.
func (s *Scheduler) GetEntry(p catalog.Pair) *Entry {
	return s.entries[p]
}

// Snapshot exports all entries for persistence, sorted by word then
// format ID for a stable on-disk order.
func (s *Scheduler) Snapshot() []Entry {
	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].WordID != result[j].WordID {
			return result[i].WordID < result[j].WordID
		}
		return result[i].FormatID < result[j].FormatID
	})
	return result
}

// Len returns the number of tracked pairs.
func (s *Scheduler) Len() int {
	return len(s.entries)
}
