// ABOUTME: Reconciles guest-local and backend query state into one view model.
// ABOUTME: Pure function; every screen renders the Model it returns.
package view

import (
	"github.com/harperreed/pullups/internal/models"
	"github.com/harperreed/pullups/internal/query"
)

// Screen selects which backend query feeds the rep count.
type Screen int

const (
	// Counter shows today's running total.
	Counter Screen = iota
	// Stats shows reps and sets for a selected day.
	Stats
)

// Selection is what the caller is looking at.
type Selection struct {
	Screen Screen
	// Date is the selected day key; empty means today.
	Date string
	// Today is the current local day key.
	Today string
}

// IsToday reports whether the selection is the current day.
func (s Selection) IsToday() bool {
	return s.Date == "" || s.Date == s.Today
}

func (s Selection) day() string {
	if s.Date == "" {
		return s.Today
	}
	return s.Date
}

// Source is either Guest or Authenticated.
type Source interface {
	source()
}

// Guest carries the local tally store values for today.
type Guest struct {
	Tally models.Tally
	Goal  *int64
}

// Authenticated carries the state of each backend query. Queries that the
// selection does not use may be left zero.
type Authenticated struct {
	TodayTotal query.State[*int64]
	TodayStats query.State[*models.DayStats]
	DayStats   query.State[*models.DayStats]
	TodayGoal  query.State[*int64]
}

func (Guest) source()         {}
func (Authenticated) source() {}

// Model is the display state for one screen.
type Model struct {
	Date    string `json:"date" yaml:"date"`
	IsToday bool   `json:"is_today" yaml:"is_today"`
	Guest   bool   `json:"guest" yaml:"guest"`

	Reps int64  `json:"reps" yaml:"reps"`
	Sets int64  `json:"sets" yaml:"sets"`
	Goal *int64 `json:"goal,omitempty" yaml:"goal,omitempty"`

	// ProgressPercentage is set only when a positive goal exists.
	ProgressPercentage *float64 `json:"progress_percentage,omitempty" yaml:"progress_percentage,omitempty"`
	// AverageRepsPerSet is set only when at least one set exists.
	AverageRepsPerSet *float64 `json:"average_reps_per_set,omitempty" yaml:"average_reps_per_set,omitempty"`

	IsLoading   bool        `json:"is_loading" yaml:"is_loading"`
	GoalLoading bool        `json:"goal_loading" yaml:"goal_loading"`
	HasError    bool        `json:"has_error" yaml:"has_error"`
	NoData      bool        `json:"no_data" yaml:"no_data"`
	Retry       []query.Key `json:"-" yaml:"-"`
}

// HasValues reports whether Reps and Sets are displayable numbers.
func (m Model) HasValues() bool {
	return !m.IsLoading && !(m.HasError && m.primaryFailed())
}

func (m Model) primaryFailed() bool {
	for _, k := range m.Retry {
		if k.Name != query.TodayGoal {
			return true
		}
	}
	return false
}

// Reconcile builds the view model for sel from src.
func Reconcile(src Source, sel Selection) Model {
	m := Model{Date: sel.day(), IsToday: sel.IsToday()}

	switch s := src.(type) {
	case Guest:
		m.Guest = true
		reconcileGuest(&m, s)
	case Authenticated:
		reconcileAuthenticated(&m, s, sel)
	default:
		m.NoData = true
		return m
	}

	if !m.HasValues() {
		return m
	}
	m.NoData = m.Reps == 0 && m.Sets == 0
	if m.Goal != nil {
		p := Progress(m.Reps, *m.Goal)
		m.ProgressPercentage = &p
	}
	if avg, ok := AverageRepsPerSet(m.Reps, m.Sets); ok {
		m.AverageRepsPerSet = &avg
	}
	return m
}

func reconcileGuest(m *Model, g Guest) {
	// Guests have no history.
	if !m.IsToday {
		return
	}
	m.Reps = g.Tally.Reps
	m.Sets = g.Tally.Sets
	m.Goal = positive(g.Goal)
}

func reconcileAuthenticated(m *Model, a Authenticated, sel Selection) {
	var (
		reps, sets int64
		ready      bool
		pending    bool
		key        query.Key
	)

	switch {
	case sel.Screen == Counter:
		key = query.TodayTotalKey()
		ready, pending = a.TodayTotal.Ready(), a.TodayTotal.Pending()
		if ready && a.TodayTotal.Data != nil {
			reps = *a.TodayTotal.Data
		}
	case m.IsToday:
		key = query.TodayStatsKey()
		ready, pending = a.TodayStats.Ready(), a.TodayStats.Pending()
		if ready && a.TodayStats.Data != nil {
			reps, sets = a.TodayStats.Data.Reps, a.TodayStats.Data.Sets
		}
	default:
		key = a.DayStats.Key
		ready, pending = a.DayStats.Ready(), a.DayStats.Pending()
		if ready && a.DayStats.Data != nil {
			reps, sets = a.DayStats.Data.Reps, a.DayStats.Data.Sets
		}
	}

	switch {
	case ready:
		m.Reps, m.Sets = reps, sets
	case pending:
		m.IsLoading = true
	default:
		m.HasError = true
		m.Retry = append(m.Retry, key)
		if m.IsToday {
			m.Retry = append(m.Retry, query.TodayGoalKey())
		}
	}

	// The backend only exposes a goal for today.
	if !m.IsToday {
		return
	}
	g := a.TodayGoal
	switch {
	case g.Ready():
		m.Goal = positive(g.Data)
	case g.Pending():
		m.GoalLoading = true
	default:
		m.HasError = true
		if !containsKey(m.Retry, query.TodayGoalKey()) {
			m.Retry = append(m.Retry, query.TodayGoalKey())
		}
	}
}

// Progress returns reps as a percentage of goal, clamped to [0, 100].
// goal must be positive.
func Progress(reps, goal int64) float64 {
	p := float64(reps) / float64(goal) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// AverageRepsPerSet returns reps/sets, or false when there are no sets.
func AverageRepsPerSet(reps, sets int64) (float64, bool) {
	if sets <= 0 {
		return 0, false
	}
	return float64(reps) / float64(sets), true
}

// positive treats absent and non-positive goals as no goal.
func positive(goal *int64) *int64 {
	if goal == nil || *goal <= 0 {
		return nil
	}
	g := *goal
	return &g
}

func containsKey(keys []query.Key, k query.Key) bool {
	for _, existing := range keys {
		if existing == k {
			return true
		}
	}
	return false
}
