// Package session assembles and runs practice sessions: ranking
// word/format pairs by weakness, filling a bounded queue, and grading
// answers as the learner works through it.
package session

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/exercise"
)

// Session sizing and fill bounds.
const (
	MinLength     = 5
	MaxLength     = 20
	DefaultLength = 10

	// MaxNewWords caps how many distinct unseen words enter one session.
	MaxNewWords = 3

	// WordRepeatCap bounds occurrences of a single word per session.
	WordRepeatCap = 3

	// unmasteredPasses is how many times the fill sweeps the unmastered
	// bucket, letting weak pairs repeat within one session.
	unmasteredPasses = 2
)

// ErrNoPairs means the catalog yields no supported word/format pairs,
// so no session can be built.
var ErrNoPairs = errors.New("session: no supported word/format pairs")

// PerformanceSource exposes the per-pair state the queue ranks by.
type PerformanceSource interface {
	Attempted(p catalog.Pair) bool
	Mastered(p catalog.Pair) bool
	Score(p catalog.Pair) float64
}

// OptionSource supplies the effective option count for a pair.
type OptionSource interface {
	EffectiveCount(p catalog.Pair) int
}

// ReviewSource reports whether a mastered pair is due to resurface.
type ReviewSource interface {
	Due(p catalog.Pair, now time.Time) bool
}

// QueueBuilder assembles the ordered exercise list for one session
// from the catalog and the three live state sources. The random source
// drives priority tie-breaks and is shared with the exercise builder.
type QueueBuilder struct {
	Catalog *catalog.Catalog
	Perf    PerformanceSource
	Options OptionSource
	Reviews ReviewSource
	Builder *exercise.Builder
	Rand    *rand.Rand
}

// ClampLength bounds a session length preference to
// [MinLength, MaxLength].
func ClampLength(n int) int {
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}

type rankedPair struct {
	pair  catalog.Pair
	score float64
	tie   float64
}

// Build produces the session queue: at most the clamped length, biased
// toward weak and unseen pairs, topped up with mastered pairs that are
// due for review. Selection never drills one word without bound unless
// the catalog is too small to offer anything else.
func (b *QueueBuilder) Build(length int, now time.Time) ([]*exercise.Exercise, error) {
	pairs := b.Catalog.SupportedPairs()
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	target := ClampLength(length)
	if target > len(pairs) {
		target = len(pairs)
	}

	ranked := b.rank(pairs)
	newWords, unmasteredWords := b.classifyWords(pairs)

	var selected []catalog.Pair
	wordCount := make(map[string]int)
	newUsed := make(map[string]bool)
	take := func(p catalog.Pair) {
		selected = append(selected, p)
		wordCount[p.WordID]++
	}

	// Drain the unmastered bucket first, in bounded passes so a weak
	// pair may repeat within the session.
	for pass := 0; pass < unmasteredPasses && len(selected) < target; pass++ {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			p := rp.pair
			if !unmasteredWords[p.WordID] || b.Perf.Mastered(p) {
				continue
			}
			if wordCount[p.WordID] >= WordRepeatCap {
				continue
			}
			take(p)
		}
	}

	// New words enter only when nothing unmastered was available.
	if len(selected) == 0 {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			p := rp.pair
			if !newWords[p.WordID] {
				continue
			}
			if !newUsed[p.WordID] && len(newUsed) >= MaxNewWords {
				continue
			}
			if wordCount[p.WordID] >= WordRepeatCap {
				continue
			}
			newUsed[p.WordID] = true
			take(p)
		}
	}

	// Top up with mastered pairs that are due for resurfacing.
	for _, rp := range ranked {
		if len(selected) >= target {
			break
		}
		p := rp.pair
		if !b.Perf.Mastered(p) || !b.Reviews.Due(p, now) {
			continue
		}
		if wordCount[p.WordID] >= WordRepeatCap {
			continue
		}
		take(p)
	}

	// Still short: override the per-word repeat cap in bucket order to
	// reach a full session. The new-word admission cap still holds so a
	// short fill never floods the learner with unseen words.
	if len(selected) < target {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			p := rp.pair
			if unmasteredWords[p.WordID] && !b.Perf.Mastered(p) {
				take(p)
			}
		}
	}
	if len(selected) < target {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			p := rp.pair
			if !newWords[p.WordID] {
				continue
			}
			if !newUsed[p.WordID] && len(newUsed) >= MaxNewWords {
				continue
			}
			newUsed[p.WordID] = true
			take(p)
		}
	}
	if len(selected) < target {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			p := rp.pair
			if b.Perf.Mastered(p) && b.Reviews.Due(p, now) {
				take(p)
			}
		}
	}

	// Degenerate content: take the top-ranked pairs so a session always
	// exists when the catalog has any supported pair at all.
	if len(selected) == 0 {
		for _, rp := range ranked {
			if len(selected) >= target {
				break
			}
			take(rp.pair)
		}
	}

	queue := make([]*exercise.Exercise, 0, len(selected))
	for _, p := range selected {
		w, err := b.Catalog.Word(p.WordID)
		if err != nil {
			return nil, err
		}
		f, err := b.Catalog.Format(p.FormatID)
		if err != nil {
			return nil, err
		}
		ex, err := b.Builder.Build(w, f, b.Options.EffectiveCount(p))
		if err != nil {
			return nil, err
		}
		queue = append(queue, ex)
	}

	if len(queue) > target {
		queue = queue[:target]
	}
	return queue, nil
}

// rank sorts pairs weakest-first: unseen pairs score -1 and lead,
// attempted pairs follow by ascending lifetime accuracy. Exact ties
// are broken by a fresh random draw per build.
func (b *QueueBuilder) rank(pairs []catalog.Pair) []rankedPair {
	ranked := make([]rankedPair, len(pairs))
	for i, p := range pairs {
		ranked[i] = rankedPair{pair: p, score: b.Perf.Score(p), tie: b.Rand.Float64()}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		return ranked[i].tie < ranked[j].tie
	})
	return ranked
}

// classifyWords buckets words by aggregate pair status: new words have
// no attempted pair at all; unmastered words have attempts and at
// least one pair short of mastery. Mastered-due words are not tracked
// here since the due check is applied per pair during fill.
func (b *QueueBuilder) classifyWords(pairs []catalog.Pair) (newWords, unmasteredWords map[string]bool) {
	attempted := make(map[string]bool)
	pending := make(map[string]bool)
	words := make(map[string]bool)

	for _, p := range pairs {
		words[p.WordID] = true
		if b.Perf.Attempted(p) {
			attempted[p.WordID] = true
		}
		if !b.Perf.Mastered(p) {
			pending[p.WordID] = true
		}
	}

	newWords = make(map[string]bool)
	unmasteredWords = make(map[string]bool)
	for w := range words {
		switch {
		case !attempted[w]:
			newWords[w] = true
		case pending[w]:
			unmasteredWords[w] = true
		}
	}
	return newWords, unmasteredWords
}
