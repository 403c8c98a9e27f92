// Package engine ties the catalog, the models derived from the
// attempt log, and the persistence layer into the facade the CLI
// drives. All mutation happens synchronously on discrete events:
// session start, attempt recorded, explicit resets.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/exercise"
	"github.com/itaybre/milim/internal/history"
	"github.com/itaybre/milim/internal/mastery"
	"github.com/itaybre/milim/internal/options"
	"github.com/itaybre/milim/internal/review"
	"github.com/itaybre/milim/internal/session"
	"github.com/itaybre/milim/internal/store"
)

// Config carries the engine's injectable collaborators. Zero values
// get production defaults; tests pin Now and Rand.
type Config struct {
	Logger *zap.Logger
	Now    func() time.Time
	Rand   *rand.Rand
}

// Engine owns the live learner state: the append-only attempt log,
// the models rehydrated from it, the persisted word floors and review
// schedule, and the session-length preference.
type Engine struct {
	cat   *catalog.Catalog
	store store.Store
	log   *zap.Logger
	now   func() time.Time
	rng   *rand.Rand

	history *history.Log
	perf    *mastery.Model
	levels  *options.Service
	reviews *review.Scheduler

	sessionLength int
}

// New loads persisted state and rehydrates the derived models. A
// malformed stored value is discarded with a warning and replaced by
// empty state; store failures are returned as errors.
func New(cat *catalog.Catalog, st store.Store, cfg Config) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		cat:   cat,
		store: st,
		log:   cfg.Logger,
		now:   cfg.Now,
		rng:   cfg.Rand,
	}

	entries, err := e.loadEntries()
	if err != nil {
		return nil, err
	}
	floors, err := e.loadFloors()
	if err != nil {
		return nil, err
	}
	schedule, err := e.loadSchedule()
	if err != nil {
		return nil, err
	}
	length, err := e.loadLength()
	if err != nil {
		return nil, err
	}

	e.history = history.NewLog(entries)
	e.perf = mastery.BuildModel(entries)
	e.levels = options.NewService(floors)
	e.levels.Replay(entries)
	e.reviews = review.NewScheduler(schedule)
	e.sessionLength = length
	return e, nil
}

// StartSession assembles a fresh exercise queue sized by the stored
// session-length preference.
func (e *Engine) StartSession() (*session.Session, error) {
	qb := &session.QueueBuilder{
		Catalog: e.cat,
		Perf:    e.perf,
		Options: e.levels,
		Reviews: e.reviews,
		Builder: exercise.NewBuilder(e.cat, e.rng),
		Rand:    e.rng,
	}
	queue, err := qb.Build(e.sessionLength, e.now())
	if err != nil {
		return nil, err
	}
	return session.NewSession(queue, e.now()), nil
}

// RecordAttempt stamps the attempt, appends it to the log, and feeds
// it through the performance model, the option state machine, and the
// review scheduler in that order. The scheduler sees the pair's
// post-update mastered flag, so the first observation that clears the
// mastery gate climbs the interval ladder.
func (e *Engine) RecordAttempt(att history.Attempt) (history.Entry, error) {
	now := e.now()
	entry := history.Entry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		WordID:         att.WordID,
		FormatID:       att.FormatID,
		PromptModality: att.PromptModality,
		AnswerModality: att.AnswerModality,
		OptionID:       att.OptionID,
		Correct:        att.Correct,
		DurationMs:     att.DurationMs,
		HintUsed:       att.HintUsed,
	}

	e.history.Append(entry)
	p := entry.Pair()
	rec := e.perf.RecordAttempt(p, entry.Correct, now)
	e.levels.Apply(p, entry.Correct)
	e.reviews.Observe(p, rec.Mastered(), now)

	if err := e.saveHistory(); err != nil {
		return entry, err
	}
	if err := e.saveSchedule(); err != nil {
		return entry, err
	}
	return entry, nil
}

// OptionCount returns the number of options the pair would present:
// the adaptive level lifted to the word floor, except letter-answer
// formats which always present the maximum.
func (e *Engine) OptionCount(p catalog.Pair) int {
	if f, err := e.cat.Format(p.FormatID); err == nil && f.Answer == catalog.ModalityLetter {
		return exercise.MaxOptions
	}
	return e.levels.EffectiveCount(p)
}

// RaiseFloor lifts the word's minimum option level and persists the
// floor map. Floors are monotonic: a value at or below the current
// floor reports false and writes nothing.
func (e *Engine) RaiseFloor(wordID string, level int) (bool, error) {
	if _, err := e.cat.Word(wordID); err != nil {
		return false, err
	}
	if !e.levels.RaiseFloor(wordID, level) {
		return false, nil
	}
	return true, e.saveFloors()
}

// SessionLength returns the stored session-length preference.
func (e *Engine) SessionLength() int {
	return e.sessionLength
}

// SetSessionLength clamps and persists the preference, returning the
// value actually stored.
func (e *Engine) SetSessionLength(n int) (int, error) {
	e.sessionLength = session.ClampLength(n)
	return e.sessionLength, e.saveLength()
}

// History returns a copy of the attempt log, oldest first.
func (e *Engine) History() []history.Entry {
	return e.history.Entries()
}

// ExportJSON renders the full attempt log as pretty-printed JSON.
func (e *Engine) ExportJSON() ([]byte, error) {
	entries := e.history.Entries()
	if entries == nil {
		entries = []history.Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Reset wipes all learner progress: history, word floors, and the
// review schedule. The session-length preference is kept.
func (e *Engine) Reset() error {
	e.history = history.NewLog(nil)
	e.perf = mastery.NewModel()
	e.levels = options.NewService(nil)
	e.reviews = review.NewScheduler(nil)

	if err := e.saveHistory(); err != nil {
		return err
	}
	if err := e.saveFloors(); err != nil {
		return err
	}
	return e.saveSchedule()
}

func (e *Engine) loadEntries() ([]history.Entry, error) {
	raw, err := e.store.Load(store.KeyHistory)
	if err != nil || raw == nil {
		return nil, err
	}
	var entries []history.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		e.warnMalformed(store.KeyHistory, err)
		return nil, nil
	}
	return entries, nil
}

func (e *Engine) loadFloors() (map[string]int, error) {
	raw, err := e.store.Load(store.KeyOptionFloors)
	if err != nil || raw == nil {
		return nil, err
	}
	var floors map[string]int
	if err := json.Unmarshal(raw, &floors); err != nil {
		e.warnMalformed(store.KeyOptionFloors, err)
		return nil, nil
	}
	return floors, nil
}

func (e *Engine) loadSchedule() ([]review.Entry, error) {
	raw, err := e.store.Load(store.KeyReviewSchedule)
	if err != nil || raw == nil {
		return nil, err
	}
	var schedule []review.Entry
	if err := json.Unmarshal(raw, &schedule); err != nil {
		e.warnMalformed(store.KeyReviewSchedule, err)
		return nil, nil
	}
	return schedule, nil
}

func (e *Engine) loadLength() (int, error) {
	raw, err := e.store.Load(store.KeySessionLength)
	if err != nil || raw == nil {
		return session.DefaultLength, err
	}
	var length int
	if err := json.Unmarshal(raw, &length); err != nil {
		e.warnMalformed(store.KeySessionLength, err)
		return session.DefaultLength, nil
	}
	return session.ClampLength(length), nil
}

func (e *Engine) warnMalformed(key string, err error) {
	e.log.Warn("discarding malformed stored state",
		zap.String("key", key),
		zap.Error(err))
}

func (e *Engine) saveHistory() error {
	entries := e.history.Entries()
	if entries == nil {
		entries = []history.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return e.store.Save(store.KeyHistory, raw)
}

func (e *Engine) saveFloors() error {
	raw, err := json.Marshal(e.levels.Floors())
	if err != nil {
		return fmt.Errorf("encode option floors: %w", err)
	}
	return e.store.Save(store.KeyOptionFloors, raw)
}

func (e *Engine) saveSchedule() error {
	raw, err := json.Marshal(e.reviews.Snapshot())
	if err != nil {
		return fmt.Errorf("encode review schedule: %w", err)
	}
	return e.store.Save(store.KeyReviewSchedule, raw)
}

func (e *Engine) saveLength() error {
	raw, err := json.Marshal(e.sessionLength)
	if err != nil {
		return fmt.Errorf("encode session length: %w", err)
	}
	return e.store.Save(store.KeySessionLength, raw)
}
