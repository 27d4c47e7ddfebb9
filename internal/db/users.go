// ABOUTME: User registration and token lookup for the backend.
// ABOUTME: Tokens are opaque UUIDs issued at registration.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// User is a registered backend account.
type User struct {
	ID    string
	Token string
}

// CreateUser registers a new user and issues a token. A non-empty name is
// stored as the initial profile.
func CreateUser(ctx context.Context, db *sql.DB, name string) (*User, error) {
	u := &User{ID: uuid.New().String(), Token: uuid.New().String()}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, token) VALUES (?, ?)`, u.ID, u.Token); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if name != "" {
		if _, err := tx.ExecContext(ctx, `INSERT INTO profiles (user_id, name) VALUES (?, ?)`, u.ID, name); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}
	return u, nil
}

// UserByToken resolves a bearer token.
func UserByToken(ctx context.Context, db *sql.DB, token string) (*User, error) {
	var u User
	err := db.QueryRowContext(ctx, `SELECT id, token FROM users WHERE token = ?`, token).Scan(&u.ID, &u.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return &u, nil
}
