// ABOUTME: Per-day rep aggregates, goals, and profiles for the backend.
// ABOUTME: Increments are a single UPSERT so concurrent sets never lose reps.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/pullups/internal/models"
)

// IncrementDay adds one set of reps to the user's day and returns the new total.
func IncrementDay(ctx context.Context, db *sql.DB, userID string, stamp, reps int64) (int64, error) {
	var total int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO day_stats (user_id, day_stamp, reps, sets, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, day_stamp) DO UPDATE SET
			reps = day_stats.reps + excluded.reps,
			sets = day_stats.sets + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING reps`,
		userID, stamp, reps,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to increment day: %w", err)
	}
	return total, nil
}

// GetDay returns the user's aggregate for a day, or nil if nothing was logged.
func GetDay(ctx context.Context, db *sql.DB, userID string, stamp int64) (*models.DayStats, error) {
	var s models.DayStats
	err := db.QueryRowContext(ctx,
		`SELECT reps, sets FROM day_stats WHERE user_id = ? AND day_stamp = ?`,
		userID, stamp,
	).Scan(&s.Reps, &s.Sets)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day: %w", err)
	}
	return &s, nil
}

// ListDays returns every logged day for the user, oldest first.
func ListDays(ctx context.Context, db *sql.DB, userID string) ([]models.TrendDay, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT day_stamp, reps FROM day_stats WHERE user_id = ? ORDER BY day_stamp ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	days := []models.TrendDay{}
	for rows.Next() {
		var d models.TrendDay
		if err := rows.Scan(&d.DayStamp, &d.Reps); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// SetGoal stores the user's goal for a day. Zero clears it.
func SetGoal(ctx context.Context, db *sql.DB, userID string, stamp, goal int64) error {
	var err error
	if goal == 0 {
		_, err = db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = ? AND day_stamp = ?`, userID, stamp)
	} else {
		_, err = db.ExecContext(ctx, `
			INSERT INTO goals (user_id, day_stamp, goal) VALUES (?, ?, ?)
			ON CONFLICT(user_id, day_stamp) DO UPDATE SET goal = excluded.goal`,
			userID, stamp, goal)
	}
	if err != nil {
		return fmt.Errorf("failed to set goal: %w", err)
	}
	return nil
}

// GetGoal returns the user's goal for a day, or nil if none is set.
func GetGoal(ctx context.Context, db *sql.DB, userID string, stamp int64) (*int64, error) {
	var goal int64
	err := db.QueryRowContext(ctx,
		`SELECT goal FROM goals WHERE user_id = ? AND day_stamp = ?`,
		userID, stamp,
	).Scan(&goal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// GetProfile returns the user's profile, or nil if none was saved.
func GetProfile(ctx context.Context, db *sql.DB, userID string) (*models.Profile, error) {
	var p models.Profile
	err := db.QueryRowContext(ctx, `SELECT name FROM profiles WHERE user_id = ?`, userID).Scan(&p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// SaveProfile creates or replaces the user's profile.
func SaveProfile(ctx context.Context, db *sql.DB, userID string, p models.Profile) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET name = excluded.name`,
		userID, p.Name)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
