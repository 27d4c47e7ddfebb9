// ABOUTME: Backend-owned records for authenticated users.
// ABOUTME: Daily aggregates, trend points, and the caller's profile.
package models

// DayStats is the backend aggregate for one DayStamp.
type DayStats struct {
	Reps int64 `json:"reps" yaml:"reps"`
	Sets int64 `json:"sets" yaml:"sets"`
}

// TrendDay is one point of a user's daily history.
type TrendDay struct {
	DayStamp int64 `json:"day_stamp" yaml:"day_stamp"`
	Reps     int64 `json:"reps" yaml:"reps"`
}

// UserStats is the caller's daily history, oldest first.
type UserStats struct {
	DailyTrends []TrendDay `json:"daily_trends" yaml:"daily_trends"`
}

// Profile is the caller's user profile.
type Profile struct {
	Name string `json:"name" yaml:"name"`
}
