// ABOUTME: Keyed cache of backend query results with fetch state tracking.
// ABOUTME: Handles retries, invalidation, and deduplication of in-flight fetches.
package query

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Query names. A Key pairs a name with an optional argument.
const (
	TodayTotal = "todayTotal"
	TodayStats = "todayStats"
	DayStats   = "dayStats"
	TodayGoal  = "todayGoal"
	UserStats  = "userStats"
	Profile    = "currentUserProfile"
)

// Default retry policy for queries. Mutations are never retried.
const (
	DefaultRetries    = 2
	DefaultRetryDelay = time.Second
)

// Key identifies one cached query.
type Key struct {
	Name string
	Arg  string
}

func (k Key) String() string {
	if k.Arg == "" {
		return k.Name
	}
	return k.Name + "/" + k.Arg
}

// TodayTotalKey and friends build the keys used across the app.
func TodayTotalKey() Key { return Key{Name: TodayTotal} }
func TodayStatsKey() Key { return Key{Name: TodayStats} }
func TodayGoalKey() Key  { return Key{Name: TodayGoal} }
func UserStatsKey() Key  { return Key{Name: UserStats} }
func ProfileKey() Key    { return Key{Name: Profile} }

// DayStatsKey is the key for one historical day.
func DayStatsKey(stamp int64) Key {
	return Key{Name: DayStats, Arg: strconv.FormatInt(stamp, 10)}
}

// State is a snapshot of one query.
type State[T any] struct {
	Key  Key
	Data T
	// Fetched is true once any fetch has succeeded.
	Fetched bool
	// Loading is true while a fetch is in flight.
	Loading bool
	// Err is the error of the most recent fetch, cleared by a success.
	Err error
	// Stale is true after invalidation until the next successful fetch.
	Stale bool
}

// Pending reports whether the query has neither data nor an error yet.
func (s State[T]) Pending() bool {
	return !s.Fetched && s.Err == nil
}

// Ready reports whether Data holds a successful, current-error-free result.
func (s State[T]) Ready() bool {
	return s.Fetched && s.Err == nil
}

type entry struct {
	data    any
	fetched bool
	err     error
	stale   bool

	// inflight counts running fetches.
	inflight int
	// gen advances on every invalidation. resultGen is the gen the stored
	// result was fetched under.
	gen       uint64
	resultGen uint64
}

// Cache holds query state for one session.
type Cache struct {
	retries    int
	retryDelay time.Duration
	log        *zap.Logger

	group   singleflight.Group
	mu      sync.Mutex
	entries map[Key]*entry
}

// NewCache creates a cache with the given retry policy.
func NewCache(retries int, retryDelay time.Duration, logger *zap.Logger) *Cache {
	if retries < 0 {
		retries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		retries:    retries,
		retryDelay: retryDelay,
		log:        logger,
		entries:    make(map[Key]*entry),
	}
}

// Fetch returns the cached state for key, running fn first if the key has
// never succeeded, was invalidated, or last failed. Concurrent fetches of
// the same key share one call. A result read before an invalidation is
// stored but stays stale, so the next Fetch asks again.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) State[T] {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.fetched && !e.stale && e.err == nil {
		c.mu.Unlock()
		return Peek[T](c, key)
	}
	gen := e.gen
	e.inflight++
	c.mu.Unlock()

	// Calls started after an invalidation must not join an older one.
	flightKey := key.String() + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		return c.runWithRetry(ctx, key, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
	})

	c.mu.Lock()
	e.inflight--
	// An older call finishing late never overwrites a newer result.
	if gen >= e.resultGen {
		e.resultGen = gen
		if err != nil {
			e.err = err
		} else {
			e.data = v
			e.fetched = true
			e.err = nil
			e.stale = e.gen != gen
		}
	}
	c.mu.Unlock()

	return Peek[T](c, key)
}

// Peek returns the current state for key without fetching.
func Peek[T any](c *Cache, key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State[T]{Key: key}
	e, ok := c.entries[key]
	if !ok {
		return s
	}
	if v, ok := e.data.(T); ok {
		s.Data = v
	}
	s.Fetched = e.fetched
	s.Loading = e.inflight > 0
	s.Err = e.err
	s.Stale = e.stale
	return s
}

// Invalidate marks every key with the given name stale, forcing the next
// Fetch to hit the backend.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Name == name {
			e.invalidate()
		}
	}
}

// InvalidateKey marks a single key stale.
func (c *Cache) InvalidateKey(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.invalidate()
	}
}

func (e *entry) invalidate() {
	e.stale = true
	e.gen++
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) runWithRetry(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if attempt == c.retries {
			break
		}
		c.log.Debug("query failed, retrying",
			zap.String("key", key.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	c.log.Warn("query failed", zap.String("key", key.String()), zap.Error(lastErr))
	return nil, lastErr
}
