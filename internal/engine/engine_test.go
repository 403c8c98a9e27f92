package engine

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/history"
	"github.com/itaybre/milim/internal/session"
	"github.com/itaybre/milim/internal/store"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func engineWords() []catalog.Word {
	return []catalog.Word{
		{ID: "dog", Text: "dog", Translation: "כלב", Image: "dog.png", Audio: "dog.mp3", InitialLetter: "d"},
		{ID: "cat", Text: "cat", Translation: "חתול", Image: "cat.png", Audio: "cat.mp3", InitialLetter: "c"},
		{ID: "fish", Text: "fish", Translation: "דג", Image: "fish.png", Audio: "fish.mp3", InitialLetter: "f"},
		{ID: "bird", Text: "bird", Translation: "ציפור", Image: "bird.png", Audio: "bird.mp3", InitialLetter: "b"},
	}
}

func newTestEngine(t *testing.T, st store.Store) (*Engine, *fakeClock) {
	t.Helper()
	cat, err := catalog.New(engineWords())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	clk := &fakeClock{t: t0}
	e, err := New(cat, st, Config{
		Logger: zap.NewNop(),
		Now:    clk.Now,
		Rand:   rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e, clk
}

func attemptFor(p catalog.Pair, correct bool) history.Attempt {
	return history.Attempt{
		WordID:         p.WordID,
		FormatID:       p.FormatID,
		PromptModality: "letter",
		AnswerModality: "image",
		OptionID:       p.WordID,
		Correct:        correct,
		DurationMs:     1200,
	}
}

func mustRecord(t *testing.T, e *Engine, p catalog.Pair, correct bool) history.Entry {
	t.Helper()
	entry, err := e.RecordAttempt(attemptFor(p, correct))
	if err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	return entry
}

func TestNewWithEmptyStore(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())

	if got := e.SessionLength(); got != session.DefaultLength {
		t.Errorf("SessionLength = %d, want %d", got, session.DefaultLength)
	}
	if got := len(e.History()); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
}

func TestOptionCountRampsWithCorrectAnswers(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())
	p := catalog.Pair{WordID: "dog", FormatID: "letter_to_image"}

	if got := e.OptionCount(p); got != 1 {
		t.Fatalf("OptionCount before any attempt = %d, want 1", got)
	}

	mustRecord(t, e, p, true)
	if got := e.OptionCount(p); got != 2 {
		t.Errorf("OptionCount after one success = %d, want 2", got)
	}

	mustRecord(t, e, p, true)
	if got := e.OptionCount(p); got != 3 {
		t.Errorf("OptionCount after two successes = %d, want 3", got)
	}
}

func TestOptionCountLetterAnswerAlwaysFour(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())
	p := catalog.Pair{WordID: "dog", FormatID: "image_to_letter"}

	if got := e.OptionCount(p); got != 4 {
		t.Errorf("OptionCount = %d, want 4 for a letter answer", got)
	}
}

func TestRecordAttemptStampsEntry(t *testing.T) {
	e, clk := newTestEngine(t, store.NewMemory())
	p := catalog.Pair{WordID: "dog", FormatID: "letter_to_image"}

	entry := mustRecord(t, e, p, true)
	if entry.ID == "" {
		t.Error("entry should carry a generated ID")
	}
	if !entry.Timestamp.Equal(clk.t) {
		t.Errorf("Timestamp = %v, want %v", entry.Timestamp, clk.t)
	}
	if entry.Pair() != p {
		t.Errorf("Pair = %v, want %v", entry.Pair(), p)
	}
}

func TestStateRehydratesOnReopen(t *testing.T) {
	mem := store.NewMemory()
	e, _ := newTestEngine(t, mem)
	p := catalog.Pair{WordID: "dog", FormatID: "letter_to_image"}

	mustRecord(t, e, p, true)
	mustRecord(t, e, p, true)
	mustRecord(t, e, catalog.Pair{WordID: "cat", FormatID: "image_to_text"}, false)

	e2, _ := newTestEngine(t, mem)
	if got, want := len(e2.History()), 3; got != want {
		t.Errorf("history length = %d, want %d", got, want)
	}
	if got := e2.OptionCount(p); got != 3 {
		t.Errorf("OptionCount after reopen = %d, want 3", got)
	}
	st := e2.Stats()
	if st.TotalAttempts != 3 || st.TotalCorrect != 2 {
		t.Errorf("Stats = %d/%d, want 3 attempts 2 correct", st.TotalAttempts, st.TotalCorrect)
	}
}

func TestMalformedStateRecovers(t *testing.T) {
	mem := store.NewMemory()
	for key, junk := range map[string]string{
		store.KeyHistory:        `{broken`,
		store.KeyOptionFloors:   `"not a map"`,
		store.KeyReviewSchedule: `3.14`,
		store.KeySessionLength:  `"ten"`,
	} {
		if err := mem.Save(key, []byte(junk)); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	e, _ := newTestEngine(t, mem)
	if got := len(e.History()); got != 0 {
		t.Errorf("history length = %d, want 0 after discard", got)
	}
	if got := e.SessionLength(); got != session.DefaultLength {
		t.Errorf("SessionLength = %d, want default %d", got, session.DefaultLength)
	}

	// The engine is usable after recovery.
	mustRecord(t, e, catalog.Pair{WordID: "dog", FormatID: "image_to_text"}, true)
	if got := len(e.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestSessionLengthClampsAndPersists(t *testing.T) {
	mem := store.NewMemory()
	e, _ := newTestEngine(t, mem)

	got, err := e.SetSessionLength(25)
	if err != nil {
		t.Fatalf("SetSessionLength: %v", err)
	}
	if got != session.MaxLength {
		t.Errorf("stored length = %d, want %d", got, session.MaxLength)
	}

	e2, _ := newTestEngine(t, mem)
	if got := e2.SessionLength(); got != session.MaxLength {
		t.Errorf("SessionLength after reopen = %d, want %d", got, session.MaxLength)
	}
}

func TestRaiseFloorPersists(t *testing.T) {
	mem := store.NewMemory()
	e, _ := newTestEngine(t, mem)
	p := catalog.Pair{WordID: "dog", FormatID: "image_to_text"}

	raised, err := e.RaiseFloor("dog", 3)
	if err != nil || !raised {
		t.Fatalf("RaiseFloor = %v, %v; want true, nil", raised, err)
	}
	if got := e.OptionCount(p); got != 3 {
		t.Errorf("OptionCount = %d, want 3 with floor", got)
	}

	raised, err = e.RaiseFloor("dog", 2)
	if err != nil || raised {
		t.Errorf("RaiseFloor lower = %v, %v; want false, nil", raised, err)
	}

	if _, err := e.RaiseFloor("unicorn", 3); err == nil {
		t.Error("expected an error for an unknown word")
	}

	e2, _ := newTestEngine(t, mem)
	if got := e2.OptionCount(p); got != 3 {
		t.Errorf("OptionCount after reopen = %d, want 3", got)
	}
}

func TestExportJSON(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())

	out, err := e.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("empty export = %q, want []", out)
	}

	mustRecord(t, e, catalog.Pair{WordID: "dog", FormatID: "image_to_text"}, true)
	out, err = e.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.HasPrefix(string(out), "[\n  {") {
		t.Errorf("export should be pretty-printed, got prefix %q", string(out)[:5])
	}
	if !strings.Contains(string(out), `"wordId": "dog"`) {
		t.Errorf("export missing wordId field: %s", out)
	}
}

func TestResetClearsProgressKeepsLength(t *testing.T) {
	mem := store.NewMemory()
	e, _ := newTestEngine(t, mem)
	p := catalog.Pair{WordID: "dog", FormatID: "letter_to_image"}

	mustRecord(t, e, p, true)
	mustRecord(t, e, p, true)
	if _, err := e.RaiseFloor("dog", 3); err != nil {
		t.Fatalf("RaiseFloor: %v", err)
	}
	if _, err := e.SetSessionLength(15); err != nil {
		t.Fatalf("SetSessionLength: %v", err)
	}

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := len(e.History()); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
	if got := e.OptionCount(p); got != 1 {
		t.Errorf("OptionCount = %d, want 1 after reset", got)
	}
	if got := e.SessionLength(); got != 15 {
		t.Errorf("SessionLength = %d, want 15 kept across reset", got)
	}

	e2, _ := newTestEngine(t, mem)
	if got := len(e2.History()); got != 0 {
		t.Errorf("history length after reopen = %d, want 0", got)
	}
	if got := e2.SessionLength(); got != 15 {
		t.Errorf("SessionLength after reopen = %d, want 15", got)
	}
}

func TestStartSessionFreshState(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())

	s, err := e.StartSession()
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.Current() == nil {
		t.Fatal("fresh session should have a current exercise")
	}

	_, total := s.Progress()
	if total < 1 || total > e.SessionLength() {
		t.Errorf("planned exercises = %d, want within (0, %d]", total, e.SessionLength())
	}

	seen := make(map[string]bool)
	for cur := s.Current(); cur != nil; cur = s.Current() {
		seen[cur.Word.ID] = true
		opt, ok := cur.CorrectOption()
		if !ok {
			t.Fatal("exercise without a correct option")
		}
		att, correct, err := s.Submit(opt.ID, time.Second, false)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if !correct {
			t.Fatal("submitting the correct option should grade correct")
		}
		if _, err := e.RecordAttempt(att); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	if len(seen) > session.MaxNewWords {
		t.Errorf("distinct new words = %d, want <= %d", len(seen), session.MaxNewWords)
	}
	if got := e.Stats().TotalAttempts; got != total {
		t.Errorf("recorded attempts = %d, want %d", got, total)
	}
}

func TestStartSessionNoSupportedPairs(t *testing.T) {
	cat, err := catalog.New([]catalog.Word{{ID: "bare", Text: "bare"}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	e, err := New(cat, store.NewMemory(), Config{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	if _, err := e.StartSession(); !errors.Is(err, session.ErrNoPairs) {
		t.Errorf("err = %v, want ErrNoPairs", err)
	}
}
