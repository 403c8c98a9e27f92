package mastery

import (
	"time"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/history"
)

// Model tracks performance records for every attempted pair. It is the
// live incremental copy of what a full history replay would produce.
type Model struct {
	records map[catalog.Pair]*Record
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{records: make(map[catalog.Pair]*Record)}
}

// BuildModel rebuilds a model by replaying the attempt log in order.
// The result is identical to applying RecordAttempt incrementally for
// each entry.
func BuildModel(entries []history.Entry) *Model {
	m := NewModel()
	for _, e := range entries {
		m.RecordAttempt(e.Pair(), e.Correct, e.Timestamp)
	}
	return m
}

// RecordAttempt applies one graded outcome, creating the record on
// first contact. Returns the updated record.
func (m *Model) RecordAttempt(p catalog.Pair, correct bool, at time.Time) *Record {
	r := m.records[p]
	if r == nil {
		r = &Record{Pair: p}
		m.records[p] = r
	}
	r.Update(correct, at)
	return r
}

// GetRecord returns the record for a pair, or nil if never attempted.
func (m *Model) GetRecord(p catalog.Pair) *Record {
	return m.records[p]
}

// Attempted reports whether the pair has at least one recorded attempt.
func (m *Model) Attempted(p catalog.Pair) bool {
	return m.records[p] != nil
}

// Mastered reports whether the pair currently meets the mastery gate.
func (m *Model) Mastered(p catalog.Pair) bool {
	return m.records[p].Mastered()
}

// Score returns the selection priority for a pair: unseen pairs score
// -1 so they sort ahead of everything, attempted pairs score their
// lifetime accuracy (weakest first).
func (m *Model) Score(p catalog.Pair) float64 {
	r := m.records[p]
	if r == nil {
		return -1
	}
	return r.LifetimeAccuracy()
}

// Records returns a copy of the record map (for stats and export).
func (m *Model) Records() map[catalog.Pair]*Record {
	result := make(map[catalog.Pair]*Record, len(m.records))
	for p, r := range m.records {
		result[p] = r
	}
	return result
}

// Len returns the number of attempted pairs.
func (m *Model) Len() int {
	return len(m.records)
}
