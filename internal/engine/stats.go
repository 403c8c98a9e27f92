package engine

import (
	"sort"

	"github.com/itaybre/milim/internal/history"
)

// WordStats aggregates lifetime attempts for one word.
type WordStats struct {
	WordID        string
	Text          string
	Attempts      int
	Correct       int
	Accuracy      float64
	MasteredPairs int
}

// FormatStats aggregates lifetime attempts for one format, including
// deprecated formats still present in old history.
type FormatStats struct {
	FormatID string
	Attempts int
	Correct  int
	Accuracy float64
}

// Stats is the lifetime progress snapshot behind the stats command.
type Stats struct {
	TotalAttempts  int
	TotalCorrect   int
	Accuracy       float64
	CurrentStreak  int
	AttemptedPairs int
	MasteredPairs  int
	DuePairs       int
	Words          []WordStats
	Formats        []FormatStats
}

// Stats aggregates the attempt log and the live models. Words are
// listed weakest first so the report leads with what needs practice.
func (e *Engine) Stats() Stats {
	now := e.now()
	entries := e.history.Entries()

	st := Stats{
		TotalAttempts: len(entries),
		CurrentStreak: trailingStreak(entries),
	}

	words := make(map[string]*WordStats)
	formats := make(map[string]*FormatStats)
	for _, en := range entries {
		if en.Correct {
			st.TotalCorrect++
		}

		ws := words[en.WordID]
		if ws == nil {
			ws = &WordStats{WordID: en.WordID, Text: en.WordID}
			// Words removed from the catalog keep their ID as label.
			if w, err := e.cat.Word(en.WordID); err == nil {
				ws.Text = w.Text
			}
			words[en.WordID] = ws
		}
		ws.Attempts++
		if en.Correct {
			ws.Correct++
		}

		fs := formats[en.FormatID]
		if fs == nil {
			fs = &FormatStats{FormatID: en.FormatID}
			formats[en.FormatID] = fs
		}
		fs.Attempts++
		if en.Correct {
			fs.Correct++
		}
	}
	if st.TotalAttempts > 0 {
		st.Accuracy = float64(st.TotalCorrect) / float64(st.TotalAttempts)
	}

	for p := range e.perf.Records() {
		st.AttemptedPairs++
		if !e.perf.Mastered(p) {
			continue
		}
		st.MasteredPairs++
		if ws := words[p.WordID]; ws != nil {
			ws.MasteredPairs++
		}
		if e.reviews.Due(p, now) {
			st.DuePairs++
		}
	}

	st.Words = make([]WordStats, 0, len(words))
	for _, ws := range words {
		if ws.Attempts > 0 {
			ws.Accuracy = float64(ws.Correct) / float64(ws.Attempts)
		}
		st.Words = append(st.Words, *ws)
	}
	sort.Slice(st.Words, func(i, j int) bool {
		if st.Words[i].Accuracy != st.Words[j].Accuracy {
			return st.Words[i].Accuracy < st.Words[j].Accuracy
		}
		return st.Words[i].WordID < st.Words[j].WordID
	})

	st.Formats = make([]FormatStats, 0, len(formats))
	for _, fs := range formats {
		if fs.Attempts > 0 {
			fs.Accuracy = float64(fs.Correct) / float64(fs.Attempts)
		}
		st.Formats = append(st.Formats, *fs)
	}
	sort.Slice(st.Formats, func(i, j int) bool {
		return st.Formats[i].FormatID < st.Formats[j].FormatID
	})

	return st
}

// trailingStreak returns the signed run of identical outcomes at the
// end of the log: positive for correct answers, negative for misses.
func trailingStreak(entries []history.Entry) int {
	if len(entries) == 0 {
		return 0
	}
	last := entries[len(entries)-1].Correct
	n := 0
	for i := len(entries) - 1; i >= 0 && entries[i].Correct == last; i-- {
		n++
	}
	if last {
		return n
	}
	return -n
}
