// ABOUTME: Backend implementation over the SQLite backend store for one user.
// ABOUTME: "Today" is the DayStamp of the backend's own clock.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/pullups/internal/daykey"
	"github.com/harperreed/pullups/internal/db"
	"github.com/harperreed/pullups/internal/models"
)

// Local serves one user's data straight from the backend database.
type Local struct {
	conn   *sql.DB
	userID string
	now    func() time.Time
}

// NewLocal returns a Backend for userID. A nil clock means time.Now.
func NewLocal(conn *sql.DB, userID string, now func() time.Time) *Local {
	if now == nil {
		now = time.Now
	}
	return &Local{conn: conn, userID: userID, now: now}
}

func (l *Local) today() int64 {
	return daykey.DayStamp(l.now())
}

func (l *Local) TodayTotal(ctx context.Context) (*int64, error) {
	return l.DayTotal(ctx, l.today())
}

func (l *Local) TodayStats(ctx context.Context) (*models.DayStats, error) {
	return l.DayStats(ctx, l.today())
}

func (l *Local) DayStats(ctx context.Context, dayStamp int64) (*models.DayStats, error) {
	return db.GetDay(ctx, l.conn, l.userID, dayStamp)
}

func (l *Local) DayTotal(ctx context.Context, dayStamp int64) (*int64, error) {
	s, err := db.GetDay(ctx, l.conn, l.userID, dayStamp)
	if err != nil || s == nil {
		return nil, err
	}
	total := s.Reps
	return &total, nil
}

func (l *Local) TodayGoal(ctx context.Context) (*int64, error) {
	return db.GetGoal(ctx, l.conn, l.userID, l.today())
}

func (l *Local) SetTodayGoal(ctx context.Context, goal int64) error {
	if goal < 0 {
		return fmt.Errorf("%w: goal must be non-negative", ErrBadRequest)
	}
	return db.SetGoal(ctx, l.conn, l.userID, l.today(), goal)
}

func (l *Local) IncrementTodayTotal(ctx context.Context, reps int64) (int64, error) {
	if reps <= 0 {
		return 0, fmt.Errorf("%w: reps must be positive", ErrBadRequest)
	}
	return db.IncrementDay(ctx, l.conn, l.userID, l.today(), reps)
}

func (l *Local) HasEntriesToday(ctx context.Context) (bool, error) {
	s, err := l.TodayStats(ctx)
	if err != nil {
		return false, err
	}
	return s != nil && s.Sets > 0, nil
}

func (l *Local) UserStats(ctx context.Context) (models.UserStats, error) {
	days, err := db.ListDays(ctx, l.conn, l.userID)
	if err != nil {
		return models.UserStats{}, err
	}
	return models.UserStats{DailyTrends: days}, nil
}

func (l *Local) CallerProfile(ctx context.Context) (*models.Profile, error) {
	return db.GetProfile(ctx, l.conn, l.userID)
}

func (l *Local) SaveCallerProfile(ctx context.Context, p models.Profile) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	return db.SaveProfile(ctx, l.conn, l.userID, p)
}
