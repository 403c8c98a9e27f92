package options

import (
	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/history"
)

// Service owns option states for attempted pairs plus the per-word
// floors. States are derived from history replay; floors are persisted
// separately because they survive resets of the live states.
type Service struct {
	states map[catalog.Pair]*State
	floors map[string]int
}

// NewService creates a service with the given persisted floors.
// Loaded floor values are clamped into the valid level range.
func NewService(floors map[string]int) *Service {
	s := &Service{
		states: make(map[catalog.Pair]*State),
		floors: make(map[string]int),
	}
	for wordID, level := range floors {
		s.floors[wordID] = ClampLevel(level)
	}
	return s
}

// Replay rebuilds option states by applying the attempt log in order.
func (s *Service) Replay(entries []history.Entry) {
	for _, e := range entries {
		s.Apply(e.Pair(), e.Correct)
	}
}

// GetState returns the state for a pair, creating it at level 1 on
// first contact.
func (s *Service) GetState(p catalog.Pair) *State {
	if st, ok := s.states[p]; ok {
		return st
	}
	st := NewState()
	s.states[p] = st
	return st
}

// Apply advances the pair's state machine by one graded outcome.
func (s *Service) Apply(p catalog.Pair, correct bool) {
	s.GetState(p).Apply(correct)
}

// EffectiveCount returns the option count to present for the pair:
// the pair's level lifted to the word floor, clamped to [1, 4].
// Letter-answer formats ignore this and always present four options.
func (s *Service) EffectiveCount(p catalog.Pair) int {
	level := MinLevel
	if st, ok := s.states[p]; ok {
		level = st.Level
	}
	if f := s.floors[p.WordID]; f > level {
		level = f
	}
	return ClampLevel(level)
}

// Floor returns the word's floor, MinLevel if never raised.
func (s *Service) Floor(wordID string) int {
	if f, ok := s.floors[wordID]; ok {
		return f
	}
	return MinLevel
}

// RaiseFloor raises the word's floor to level. Floors are monotonic:
// equal or lower values are ignored. Reports whether the floor changed.
func (s *Service) RaiseFloor(wordID string, level int) bool {
	level = ClampLevel(level)
	if level <= s.Floor(wordID) {
		return false
	}
	s.floors[wordID] = level
	return true
}

// Floors returns a copy of the floor map for persistence.
func (s *Service) Floors() map[string]int {
	result := make(map[string]int, len(s.floors))
	for id, f := range s.floors {
		result[id] = f
	}
	return result
}
