// ABOUTME: Application service behind every pullups surface (CLI, MCP, watch).
// ABOUTME: Routes reads and writes to the guest store or the backend and builds view models.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/pullups/internal/backend"
	"github.com/harperreed/pullups/internal/daykey"
	"github.com/harperreed/pullups/internal/models"
	"github.com/harperreed/pullups/internal/query"
	"github.com/harperreed/pullups/internal/tally"
	"github.com/harperreed/pullups/internal/view"
	"go.uber.org/zap"
)

var (
	ErrZeroReps         = errors.New("cannot log a set with 0 reps")
	ErrInvalidGoal      = errors.New("please enter a valid non-negative number")
	ErrMutationPending  = errors.New("another update is still in progress")
	ErrResetUnavailable = errors.New("reset today is not available for authenticated users")
	ErrFutureDate       = errors.New("cannot select a date in the future")
	ErrGuest            = errors.New("sign in to use this feature")
)

// Options configures a Tracker.
type Options struct {
	// Store holds guest data. Required.
	Store *tally.Store
	// Backend serves authenticated users. Nil means guest mode.
	Backend backend.Backend
	// Cache holds backend query state. Nil gets a cache with the default
	// retry policy.
	Cache  *query.Cache
	Now    func() time.Time
	Logger *zap.Logger
}

// Tracker serves the counter and statistics screens.
type Tracker struct {
	store   *tally.Store
	backend backend.Backend
	cache   *query.Cache
	now     func() time.Time
	log     *zap.Logger

	// One in-flight mutation of each kind.
	setMu  sync.Mutex
	goalMu sync.Mutex
}

// New creates a Tracker.
func New(opts Options) *Tracker {
	t := &Tracker{
		store:   opts.Store,
		backend: opts.Backend,
		cache:   opts.Cache,
		now:     opts.Now,
		log:     opts.Logger,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.cache == nil {
		t.cache = query.NewCache(query.DefaultRetries, query.DefaultRetryDelay, t.log)
	}
	return t
}

// TodayStamp returns the DayStamp of the current instant, which is how the
// backend addresses "today".
func (t *Tracker) TodayStamp() int64 {
	return daykey.DayStamp(t.now())
}

// IsAuthenticated reports whether reads and writes go to the backend.
func (t *Tracker) IsAuthenticated() bool {
	return t.backend != nil
}

// Today returns the current local day key.
func (t *Tracker) Today() string {
	return daykey.LocalDayKey(t.now())
}

// Counter returns the counter screen model.
func (t *Tracker) Counter(ctx context.Context) view.Model {
	sel := view.Selection{Screen: view.Counter, Today: t.Today()}
	if !t.IsAuthenticated() {
		return view.Reconcile(t.guestSource(), sel)
	}
	return view.Reconcile(view.Authenticated{
		TodayTotal: query.Fetch(ctx, t.cache, query.TodayTotalKey(), t.backend.TodayTotal),
		TodayGoal:  query.Fetch(ctx, t.cache, query.TodayGoalKey(), t.backend.TodayGoal),
	}, sel)
}

// Stats returns the statistics screen model for date (YYYY-MM-DD). An
// empty date means today.
func (t *Tracker) Stats(ctx context.Context, date string) (view.Model, error) {
	now := t.now()
	today := daykey.LocalDayKey(now)
	if date == "" {
		date = today
	}
	stamp, err := daykey.DateStringToDayStampIn(date, now.Location())
	if err != nil {
		return view.Model{}, err
	}
	if daykey.IsFuture(date, now) {
		return view.Model{}, fmt.Errorf("%w: %s", ErrFutureDate, date)
	}

	sel := view.Selection{Screen: view.Stats, Date: date, Today: today}
	if !t.IsAuthenticated() {
		return view.Reconcile(t.guestSource(), sel), nil
	}

	var src view.Authenticated
	if sel.IsToday() {
		src.TodayStats = query.Fetch(ctx, t.cache, query.TodayStatsKey(), t.backend.TodayStats)
		src.TodayGoal = query.Fetch(ctx, t.cache, query.TodayGoalKey(), t.backend.TodayGoal)
	} else {
		src.DayStats = query.Fetch(ctx, t.cache, query.DayStatsKey(stamp),
			func(ctx context.Context) (*models.DayStats, error) {
				return t.backend.DayStats(ctx, stamp)
			})
	}
	return view.Reconcile(src, sel), nil
}

func (t *Tracker) guestSource() view.Guest {
	g := view.Guest{Tally: t.store.Tally()}
	if goal, ok := t.store.Goal(); ok {
		g.Goal = &goal
	}
	return g
}

// LogSet records one set of reps and returns today's new total.
func (t *Tracker) LogSet(ctx context.Context, reps int64) (int64, error) {
	if reps == 0 {
		return 0, ErrZeroReps
	}
	if reps < 0 {
		return 0, tally.ErrInvalidReps
	}
	if !t.setMu.TryLock() {
		return 0, ErrMutationPending
	}
	defer t.setMu.Unlock()

	if !t.IsAuthenticated() {
		tl, err := t.store.AddSet(reps)
		if err != nil {
			return 0, fmt.Errorf("log set: %w", err)
		}
		return tl.Reps, nil
	}

	total, err := t.backend.IncrementTodayTotal(ctx, reps)
	if err != nil {
		return 0, fmt.Errorf("log set: %w", err)
	}
	t.cache.Invalidate(query.TodayTotal)
	t.cache.Invalidate(query.TodayStats)
	t.cache.Invalidate(query.DayStats)
	t.cache.Invalidate(query.UserStats)
	t.log.Debug("logged set", zap.Int64("reps", reps), zap.Int64("total", total))
	return total, nil
}

// ParseGoal validates goal input. Empty input means clear and returns nil.
func ParseGoal(input string) (*int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	g, err := strconv.ParseInt(input, 10, 64)
	if err != nil || g < 0 {
		return nil, ErrInvalidGoal
	}
	return &g, nil
}

// SetGoal sets today's goal.
func (t *Tracker) SetGoal(ctx context.Context, goal int64) error {
	if goal < 0 {
		return ErrInvalidGoal
	}
	return t.writeGoal(ctx, &goal)
}

// ClearGoal removes today's goal.
func (t *Tracker) ClearGoal(ctx context.Context) error {
	return t.writeGoal(ctx, nil)
}

func (t *Tracker) writeGoal(ctx context.Context, goal *int64) error {
	if !t.goalMu.TryLock() {
		return ErrMutationPending
	}
	defer t.goalMu.Unlock()

	if !t.IsAuthenticated() {
		if err := t.store.SetGoal(goal); err != nil {
			return fmt.Errorf("set goal: %w", err)
		}
		return nil
	}

	// The backend clears a goal when given 0.
	var v int64
	if goal != nil {
		v = *goal
	}
	if err := t.backend.SetTodayGoal(ctx, v); err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	t.cache.Invalidate(query.TodayGoal)
	return nil
}

// ResetToday zeroes today's guest tally.
func (t *Tracker) ResetToday(ctx context.Context) error {
	if t.IsAuthenticated() {
		return ErrResetUnavailable
	}
	if !t.setMu.TryLock() {
		return ErrMutationPending
	}
	defer t.setMu.Unlock()

	if _, err := t.store.ResetToday(); err != nil {
		return fmt.Errorf("reset today: %w", err)
	}
	return nil
}

// Retry forces the given queries to be fetched again on next read.
func (t *Tracker) Retry(keys []query.Key) {
	for _, k := range keys {
		t.cache.InvalidateKey(k)
	}
}

// History returns the caller's daily trends.
func (t *Tracker) History(ctx context.Context) (models.UserStats, error) {
	if !t.IsAuthenticated() {
		return models.UserStats{}, ErrGuest
	}
	s := query.Fetch(ctx, t.cache, query.UserStatsKey(), t.backend.UserStats)
	if s.Err != nil {
		return models.UserStats{}, s.Err
	}
	return s.Data, nil
}

// Profile returns the caller's profile, or nil if none was saved.
func (t *Tracker) Profile(ctx context.Context) (*models.Profile, error) {
	if !t.IsAuthenticated() {
		return nil, ErrGuest
	}
	s := query.Fetch(ctx, t.cache, query.ProfileKey(), t.backend.CallerProfile)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}

// SaveProfile stores the caller's display name.
func (t *Tracker) SaveProfile(ctx context.Context, name string) error {
	if !t.IsAuthenticated() {
		return ErrGuest
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", backend.ErrBadRequest)
	}
	if err := t.backend.SaveCallerProfile(ctx, models.Profile{Name: name}); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	t.cache.Invalidate(query.Profile)
	return nil
}

// Store exposes the guest store, for the rollover watcher.
func (t *Tracker) Store() *tally.Store {
	return t.store
}

// Rollover drops cached "today" queries after the local day changed, so
// the next read asks the backend about the new day.
func (t *Tracker) Rollover() {
	t.cache.Invalidate(query.TodayTotal)
	t.cache.Invalidate(query.TodayStats)
	t.cache.Invalidate(query.TodayGoal)
}
