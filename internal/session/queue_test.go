package session

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/exercise"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type fakePerf struct {
	attempted map[catalog.Pair]bool
	mastered  map[catalog.Pair]bool
	scores    map[catalog.Pair]float64
}

func newFakePerf() *fakePerf {
	return &fakePerf{
		attempted: make(map[catalog.Pair]bool),
		mastered:  make(map[catalog.Pair]bool),
		scores:    make(map[catalog.Pair]float64),
	}
}

func (f *fakePerf) seen(p catalog.Pair, score float64) {
	f.attempted[p] = true
	f.scores[p] = score
}

func (f *fakePerf) master(p catalog.Pair) {
	f.attempted[p] = true
	f.mastered[p] = true
	f.scores[p] = 1
}

func (f *fakePerf) Attempted(p catalog.Pair) bool { return f.attempted[p] }
func (f *fakePerf) Mastered(p catalog.Pair) bool  { return f.mastered[p] }
func (f *fakePerf) Score(p catalog.Pair) float64 {
	if !f.attempted[p] {
		return -1
	}
	return f.scores[p]
}

type fakeOptions struct{ n int }

func (f fakeOptions) EffectiveCount(catalog.Pair) int { return f.n }

type fakeReviews struct{ due map[catalog.Pair]bool }

func (f *fakeReviews) Due(p catalog.Pair, _ time.Time) bool { return f.due[p] }

// simpleWords builds words supporting exactly image_to_text and
// text_to_image, keeping pair counts easy to reason about.
func simpleWords(ids ...string) []catalog.Word {
	words := make([]catalog.Word, 0, len(ids))
	for _, id := range ids {
		words = append(words, catalog.Word{ID: id, Text: id, Image: id + ".png"})
	}
	return words
}

// richWords adds a translation so each word supports four formats.
func richWords(ids ...string) []catalog.Word {
	words := simpleWords(ids...)
	for i := range words {
		words[i].Translation = words[i].ID + "-he"
	}
	return words
}

func newTestQueueBuilder(t *testing.T, words []catalog.Word, perf *fakePerf, due map[catalog.Pair]bool) (*QueueBuilder, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.New(words)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	if due == nil {
		due = make(map[catalog.Pair]bool)
	}
	rng := rand.New(rand.NewSource(1))
	qb := &QueueBuilder{
		Catalog: cat,
		Perf:    perf,
		Options: fakeOptions{n: 1},
		Reviews: &fakeReviews{due: due},
		Builder: exercise.NewBuilder(cat, rng),
		Rand:    rng,
	}
	return qb, cat
}

func wordPairs(cat *catalog.Catalog, wordID string) []catalog.Pair {
	var pairs []catalog.Pair
	for _, p := range cat.SupportedPairs() {
		if p.WordID == wordID {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

func distinctWords(queue []*exercise.Exercise) map[string]int {
	counts := make(map[string]int)
	for _, ex := range queue {
		counts[ex.Word.ID]++
	}
	return counts
}

func TestClampLength(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, MinLength},
		{5, 5},
		{10, 10},
		{20, 20},
		{25, MaxLength},
	}
	for _, c := range cases {
		if got := ClampLength(c.in); got != c.want {
			t.Errorf("ClampLength(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestBuildFreshCatalogCapsNewWords(t *testing.T) {
	qb, _ := newTestQueueBuilder(t, simpleWords("a", "b", "c", "d", "e", "f"), newFakePerf(), nil)

	queue, err := qb.Build(10, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(queue) != 10 {
		t.Errorf("queue length = %d, want 10", len(queue))
	}

	counts := distinctWords(queue)
	if len(counts) > MaxNewWords {
		t.Errorf("distinct new words = %d, want <= %d", len(counts), MaxNewWords)
	}
	for _, ex := range queue {
		if !ex.Novel {
			t.Error("built exercises should be novel")
		}
	}
}

func TestBuildPrefersWeakPairs(t *testing.T) {
	perf := newFakePerf()
	qb, cat := newTestQueueBuilder(t, simpleWords("alpha", "beta"), perf, nil)
	for _, p := range wordPairs(cat, "alpha") {
		perf.seen(p, 0.2)
	}
	for _, p := range wordPairs(cat, "beta") {
		perf.seen(p, 0.9)
	}

	queue, err := qb.Build(5, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(queue) != 4 {
		t.Fatalf("queue length = %d, want 4", len(queue))
	}
	if queue[0].Word.ID != "alpha" || queue[1].Word.ID != "alpha" {
		t.Errorf("weakest word should lead the queue, got %s then %s",
			queue[0].Word.ID, queue[1].Word.ID)
	}
}

func TestBuildExcludesMasteredNotDue(t *testing.T) {
	perf := newFakePerf()
	qb, cat := newTestQueueBuilder(t, simpleWords("solid", "shaky"), perf, nil)
	for _, p := range wordPairs(cat, "solid") {
		perf.master(p)
	}
	for _, p := range wordPairs(cat, "shaky") {
		perf.seen(p, 0.5)
	}

	queue, err := qb.Build(5, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, ex := range queue {
		if ex.Word.ID == "solid" {
			t.Error("mastered word resurfaced before its review was due")
		}
	}
}

func TestBuildTopsUpMasteredDue(t *testing.T) {
	perf := newFakePerf()
	due := make(map[catalog.Pair]bool)
	qb, cat := newTestQueueBuilder(t, simpleWords("solid", "shaky"), perf, due)
	for _, p := range wordPairs(cat, "solid") {
		perf.master(p)
		due[p] = true
	}
	for _, p := range wordPairs(cat, "shaky") {
		perf.seen(p, 0.5)
	}

	queue, err := qb.Build(5, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	found := false
	for _, ex := range queue {
		if ex.Word.ID == "solid" {
			found = true
		}
	}
	if !found {
		t.Error("due mastered word missing from the session")
	}
}

func TestBuildRespectsWordRepeatCap(t *testing.T) {
	perf := newFakePerf()
	qb, cat := newTestQueueBuilder(t, richWords("u", "v", "w"), perf, nil)
	for _, id := range []string{"u", "v", "w"} {
		for _, p := range wordPairs(cat, id) {
			perf.seen(p, 0.5)
		}
	}

	queue, err := qb.Build(9, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(queue) != 9 {
		t.Fatalf("queue length = %d, want 9", len(queue))
	}
	for id, n := range distinctWords(queue) {
		if n != WordRepeatCap {
			t.Errorf("word %s appears %d times, want %d", id, n, WordRepeatCap)
		}
	}
}

func TestBuildClampsToAvailablePairs(t *testing.T) {
	qb, _ := newTestQueueBuilder(t, simpleWords("a", "b", "c", "d", "e", "f"), newFakePerf(), nil)

	queue, err := qb.Build(25, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// 12 supported pairs < the clamped maximum of 20.
	if len(queue) != 12 {
		t.Errorf("queue length = %d, want 12", len(queue))
	}

	queue, err = qb.Build(3, t0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(queue) != MinLength {
		t.Errorf("queue length = %d, want %d", len(queue), MinLength)
	}
}

func TestBuildNoSupportedPairs(t *testing.T) {
	// Text plus translation supports no active format.
	words := []catalog.Word{{ID: "bare", Text: "bare", Translation: "חשוף"}}
	qb, _ := newTestQueueBuilder(t, words, newFakePerf(), nil)

	_, err := qb.Build(10, t0)
	if !errors.Is(err, ErrNoPairs) {
		t.Errorf("err = %v, want ErrNoPairs", err)
	}
}
