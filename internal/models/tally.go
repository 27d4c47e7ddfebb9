// ABOUTME: Guest-mode records persisted in the local key/value store.
// ABOUTME: Tally holds today's reps and sets, Goal an optional daily target.
package models

// Tally is the persisted guest counter for one local day.
type Tally struct {
	Date string `json:"date" yaml:"date"`
	Reps int64  `json:"reps" yaml:"reps"`
	Sets int64  `json:"sets" yaml:"sets"`
}

// NewTally returns an empty tally for the given day key.
func NewTally(date string) Tally {
	return Tally{Date: date}
}

// IsEmpty reports whether no sets were logged.
func (t Tally) IsEmpty() bool {
	return t.Reps == 0 && t.Sets == 0
}

// WithSet returns the tally after logging one set of reps.
func (t Tally) WithSet(reps int64) Tally {
	t.Reps += reps
	t.Sets++
	return t
}

// Goal is the persisted guest daily goal. It only applies on Date.
type Goal struct {
	Date string `json:"date" yaml:"date"`
	Goal int64  `json:"goal" yaml:"goal"`
}
