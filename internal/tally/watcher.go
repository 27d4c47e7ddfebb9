// ABOUTME: Polling detector for local day rollover.
// ABOUTME: Keeps its baseline day key as state updated in place on each tick.
package tally

import (
	"context"
	"sync"
	"time"

	"github.com/harperreed/pullups/internal/models"
	"go.uber.org/zap"
)

// DefaultPollInterval is how often the watcher re-derives the day key.
const DefaultPollInterval = time.Minute

// Rollover describes a detected day change and the re-read records.
type Rollover struct {
	Previous string
	Current  string
	Tally    models.Tally
	Goal     *int64
}

// Watcher polls the store's clock and reports day changes.
type Watcher struct {
	store      *Store
	interval   time.Duration
	onRollover func(Rollover)
	log        *zap.Logger

	mu       sync.Mutex
	baseline string
}

// NewWatcher creates a watcher whose baseline is the store's current day.
func NewWatcher(store *Store, interval time.Duration, onRollover func(Rollover)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		store:      store,
		interval:   interval,
		onRollover: onRollover,
		log:        store.log,
		baseline:   store.Today(),
	}
}

// Baseline returns the day key the watcher last observed.
func (w *Watcher) Baseline() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.baseline
}

// Check compares the current day key with the baseline. On change it
// advances the baseline, re-reads the store, and notifies.
func (w *Watcher) Check() bool {
	current := w.store.Today()

	w.mu.Lock()
	previous := w.baseline
	if current == previous {
		w.mu.Unlock()
		return false
	}
	w.baseline = current
	w.mu.Unlock()

	r := Rollover{
		Previous: previous,
		Current:  current,
		Tally:    w.store.Tally(),
	}
	if g, ok := w.store.Goal(); ok {
		r.Goal = &g
	}

	w.log.Debug("local day rolled over",
		zap.String("previous", previous),
		zap.String("current", current))

	if w.onRollover != nil {
		w.onRollover(r)
	}
	return true
}

// Run polls until ctx is done. One ticker serves the watcher's lifetime.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Check()
		}
	}
}
