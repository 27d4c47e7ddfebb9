// ABOUTME: Backend interface for authenticated users' remote data.
// ABOUTME: Implemented by the HTTP Client and the SQLite-backed Local.
package backend

import (
	"context"
	"errors"

	"github.com/harperreed/pullups/internal/models"
)

var (
	// ErrUnauthenticated means the caller has no valid credentials.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrBadRequest means the backend rejected the input.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound means the backend has no such endpoint.
	ErrNotFound = errors.New("not found")
)

// Backend is the set of remote operations the client consumes. Absent
// values are returned as nil pointers with a nil error.
type Backend interface {
	TodayTotal(ctx context.Context) (*int64, error)
	TodayStats(ctx context.Context) (*models.DayStats, error)
	DayStats(ctx context.Context, dayStamp int64) (*models.DayStats, error)
	DayTotal(ctx context.Context, dayStamp int64) (*int64, error)
	TodayGoal(ctx context.Context) (*int64, error)
	// SetTodayGoal stores the goal for the backend's today; 0 clears it.
	SetTodayGoal(ctx context.Context, goal int64) error
	// IncrementTodayTotal logs one set and returns the new running total.
	IncrementTodayTotal(ctx context.Context, reps int64) (int64, error)
	HasEntriesToday(ctx context.Context) (bool, error)
	UserStats(ctx context.Context) (models.UserStats, error)
	CallerProfile(ctx context.Context) (*models.Profile, error)
	SaveCallerProfile(ctx context.Context, p models.Profile) error
}
