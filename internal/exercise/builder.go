package exercise

import (
	"fmt"
	"math/rand"

	"github.com/itaybre/milim/internal/catalog"
)

// Option count bounds for adaptive formats. Letter-answer formats
// always present the maximum.
const (
	MinOptions = 1
	MaxOptions = 4
)

const letterDistractors = MaxOptions - 1

// Builder materializes exercises against a fixed catalog. The random
// source drives distractor draws and option shuffling and is injected
// so tests can pin it.
type Builder struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

// NewBuilder creates a builder over the given catalog.
func NewBuilder(cat *catalog.Catalog, rng *rand.Rand) *Builder {
	return &Builder{cat: cat, rng: rng}
}

// Build materializes an exercise for a word/format pair. For
// letter-answer formats the option count is fixed at MaxOptions;
// otherwise it is the given count clamped to [MinOptions, MaxOptions].
// The returned option order is shuffled.
func (b *Builder) Build(w catalog.Word, f catalog.Format, optionCount int) (*Exercise, error) {
	var opts []Option
	var err error

	if f.Answer == catalog.ModalityLetter {
		opts, err = b.buildLetterOptions(w)
	} else {
		opts, err = b.buildWordOptions(w, f, clampCount(optionCount))
	}
	if err != nil {
		return nil, err
	}

	b.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	return &Exercise{Word: w, Format: f, Options: opts, Novel: true}, nil
}

func clampCount(n int) int {
	if n < MinOptions {
		return MinOptions
	}
	if n > MaxOptions {
		return MaxOptions
	}
	return n
}

func (b *Builder) buildWordOptions(w catalog.Word, f catalog.Format, count int) ([]Option, error) {
	distractors, err := b.drawDistractors(w, f, count-1)
	if err != nil {
		return nil, err
	}

	opts := make([]Option, 0, count)
	opts = append(opts, wordOption(w, f.Answer, true))
	for _, d := range distractors {
		opts = append(opts, wordOption(d, f.Answer, false))
	}
	return opts, nil
}

// drawDistractors collects need distractor words: the word's declared
// preferred list first, in order, then a shuffled draw from the rest
// of the catalog. Both sources apply the same eligibility filter.
func (b *Builder) drawDistractors(w catalog.Word, f catalog.Format, need int) ([]catalog.Word, error) {
	if need <= 0 {
		return nil, nil
	}

	picked := make([]catalog.Word, 0, need)
	used := map[string]bool{w.ID: true}

	for _, id := range w.DistractorIDs {
		if len(picked) == need {
			break
		}
		cand, err := b.cat.Word(id)
		if err != nil || used[cand.ID] || !distractorOK(w, f, cand) {
			continue
		}
		used[cand.ID] = true
		picked = append(picked, cand)
	}

	if len(picked) < need {
		pool := b.cat.Words()
		b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, cand := range pool {
			if len(picked) == need {
				break
			}
			if used[cand.ID] || !distractorOK(w, f, cand) {
				continue
			}
			used[cand.ID] = true
			picked = append(picked, cand)
		}
	}

	if len(picked) < need {
		return nil, fmt.Errorf("%w: %s/%s needs %d, found %d",
			ErrInsufficientDistractors, w.ID, f.ID, need, len(picked))
	}
	return picked, nil
}

// distractorOK reports whether cand may stand in as a wrong answer for
// w under format f. Candidates must render in the answer modality, and
// letter-prompt formats exclude words sharing the target's initial
// letter since those would also match the prompt.
func distractorOK(w catalog.Word, f catalog.Format, cand catalog.Word) bool {
	if cand.ID == w.ID {
		return false
	}
	if !cand.HasModality(f.Answer) {
		return false
	}
	if f.Prompt == catalog.ModalityLetter && w.InitialLetter != "" && cand.InitialLetter == w.InitialLetter {
		return false
	}
	return true
}

func wordOption(w catalog.Word, answer catalog.Modality, correct bool) Option {
	o := Option{ID: w.ID, Label: w.Text, Correct: correct}
	switch answer {
	case catalog.ModalityTranslation:
		o.Label = w.Translation
	case catalog.ModalityImage:
		o.Image = w.Image
	case catalog.ModalityAudio:
		o.Audio = w.Audio
	}
	return o
}

// buildLetterOptions produces the fixed 4-letter option set: the
// word's initial letter plus three distinct distractor letters, drawn
// from letters actually present in the catalog before falling back to
// the rest of the alphabet.
func (b *Builder) buildLetterOptions(w catalog.Word) ([]Option, error) {
	target := catalog.NormalizeLetter(w.InitialLetter)
	if target == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoInitialLetter, w.ID)
	}

	pool := b.letterPool(target)
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > letterDistractors {
		pool = pool[:letterDistractors]
	}

	used := map[string]bool{target: true}
	for _, l := range pool {
		used[l] = true
	}
	for r := 'a'; r <= 'z' && len(pool) < letterDistractors; r++ {
		l := string(r)
		if used[l] {
			continue
		}
		used[l] = true
		pool = append(pool, l)
	}
	// Repeat the target if the alphabet could not fill the set.
	for len(pool) < letterDistractors {
		pool = append(pool, target)
	}

	opts := make([]Option, 0, MaxOptions)
	opts = append(opts, letterOption(target, true))
	for _, l := range pool {
		opts = append(opts, letterOption(l, false))
	}
	return opts, nil
}

// letterPool returns the distinct initial letters present in the
// catalog, excluding the target.
func (b *Builder) letterPool(target string) []string {
	seen := map[string]bool{target: true}
	var pool []string
	for _, cand := range b.cat.Words() {
		l := cand.InitialLetter
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		pool = append(pool, l)
	}
	return pool
}

func letterOption(letter string, correct bool) Option {
	return Option{ID: letter, Label: letter, Letter: letter, Correct: correct}
}
