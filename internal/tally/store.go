// ABOUTME: Local tally store for guest mode: today's reps, sets, and goal.
// ABOUTME: Records are keyed by local day; stale records read as empty.
package tally

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/pullups/internal/daykey"
	"github.com/harperreed/pullups/internal/models"
	"github.com/harperreed/pullups/internal/storage"
	"go.uber.org/zap"
)

// Persisted record keys.
const (
	TallyKey = "pullup_today_tally"
	GoalKey  = "pullup_daily_goal"
)

// Keys lists every key the store persists.
func Keys() []string {
	return []string{TallyKey, GoalKey}
}

var (
	ErrInvalidReps = errors.New("reps must be a positive number")
	ErrInvalidGoal = errors.New("goal must be a non-negative number")
)

// Store reads and writes the guest records through a KV.
type Store struct {
	kv  storage.KV
	now func() time.Time
	log *zap.Logger

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// New creates a Store. A nil clock means time.Now; a nil logger discards.
func New(kv storage.KV, now func() time.Time, logger *zap.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, now: now, log: logger}
}

// Today returns the current local day key.
func (s *Store) Today() string {
	return daykey.LocalDayKey(s.now())
}

// Tally returns today's tally. A missing, unreadable, or stale record
// yields an empty tally for today.
func (s *Store) Tally() models.Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTally(s.Today())
}

// Goal returns today's goal, if one was set today.
func (s *Store) Goal() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	var g models.Goal
	if !s.load(GoalKey, &g) || g.Date != today {
		return 0, false
	}
	return g.Goal, true
}

// AddSet adds reps to today's total and counts one set.
func (s *Store) AddSet(reps int64) (models.Tally, error) {
	if reps <= 0 {
		return models.Tally{}, ErrInvalidReps
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.loadTally(s.Today()).WithSet(reps)
	if err := s.save(TallyKey, t); err != nil {
		return models.Tally{}, err
	}
	return t, nil
}

// ResetToday zeroes today's reps and sets.
func (s *Store) ResetToday() (models.Tally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.NewTally(s.Today())
	if err := s.save(TallyKey, t); err != nil {
		return models.Tally{}, err
	}
	return t, nil
}

// SetGoal stores today's goal. A nil goal clears it.
func (s *Store) SetGoal(goal *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal == nil {
		if err := s.kv.Delete(GoalKey); err != nil {
			return fmt.Errorf("clear goal: %w", err)
		}
		return nil
	}
	if *goal < 0 {
		return ErrInvalidGoal
	}
	return s.save(GoalKey, models.Goal{Date: s.Today(), Goal: *goal})
}

func (s *Store) loadTally(today string) models.Tally {
	var t models.Tally
	if !s.load(TallyKey, &t) || t.Date != today {
		return models.NewTally(today)
	}
	if t.Reps < 0 || t.Sets < 0 {
		s.log.Debug("discarding negative tally", zap.Int64("reps", t.Reps), zap.Int64("sets", t.Sets))
		return models.NewTally(today)
	}
	return t
}

// load decodes key into v. Any failure reads as "no data".
func (s *Store) load(key string, v any) bool {
	data, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Debug("local record unreadable", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Debug("local record malformed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
