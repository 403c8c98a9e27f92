package options

const (
	// MinLevel and MaxLevel bound the option-count level. The level is
	// also the number of options presented for non-letter formats.
	MinLevel = 1
	MaxLevel = 4

	// promoteRun is the success run required to advance a level past 2.
	// Level 1 promotes after a single success.
	promoteRun = 2

	// demoteRun is the failure run that knocks level 3 or 4 down to 2.
	demoteRun = 2

	// runCap bounds stored runs once no further transition can trigger.
	runCap = 2
)

// State is the adaptive difficulty level for one (word, format) pair:
// more options means a harder exercise. States start at level 1 and
// move one step at a time.
type State struct {
	Level      int
	SuccessRun int
	FailureRun int
}

// NewState returns the starting state for an unseen pair.
func NewState() *State {
	return &State{Level: MinLevel}
}

// Apply advances the state machine by one graded outcome.
//
// The first success fast-tracks past the single-option level without
// consuming the run, so two straight successes on a fresh pair land on
// level 3. Further promotion needs a run of two, which the promotion
// spends. Incorrect answers demote only from level 3 or 4, back to 2,
// after two consecutive failures. Level 2 never falls back to 1: a
// learner who has seen two options keeps seeing at least two.
func (s *State) Apply(correct bool) {
	if correct {
		s.FailureRun = 0
		s.SuccessRun++
		switch {
		case s.Level == MinLevel:
			s.Level++
		case s.Level < MaxLevel && s.SuccessRun >= promoteRun:
			s.Level++
			s.SuccessRun = 0
		case s.SuccessRun > runCap:
			s.SuccessRun = runCap
		}
	} else {
		s.SuccessRun = 0
		s.FailureRun++
		switch {
		case s.Level >= 3 && s.FailureRun >= demoteRun:
			s.Level = 2
			s.FailureRun = 0
		case s.FailureRun > runCap:
			s.FailureRun = runCap
		}
	}

	if s.Level < MinLevel {
		s.Level = MinLevel
	}
	if s.Level > MaxLevel {
		s.Level = MaxLevel
	}
}

// ClampLevel bounds an arbitrary level value into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
