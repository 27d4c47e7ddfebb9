// ABOUTME: SQL schema definition for the pullups backend database.
// ABOUTME: Defines users, per-day stats, per-day goals, and profiles.
package db

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    token TEXT NOT NULL UNIQUE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS day_stats (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    day_stamp INTEGER NOT NULL,
    reps INTEGER NOT NULL DEFAULT 0,
    sets INTEGER NOT NULL DEFAULT 0,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, day_stamp)
);

CREATE TABLE IF NOT EXISTS goals (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    day_stamp INTEGER NOT NULL,
    goal INTEGER NOT NULL,
    PRIMARY KEY (user_id, day_stamp)
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL
);
`
