package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS products (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    price      TEXT NOT NULL,
    category   TEXT NOT NULL CHECK (category IN ('V', 'S', 'A', 'C')),
    fabric     TEXT NOT NULL CHECK (fabric IN ('F', 'C', 'S', 'P', 'M')),
    sku        TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sequences (
    category TEXT NOT NULL,
    year     INTEGER NOT NULL,
    counter  INTEGER NOT NULL DEFAULT 0 CHECK (counter >= 0),
    PRIMARY KEY (category, year)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS logo (
    id    INTEGER PRIMARY KEY CHECK (id = 1),
    image BLOB NOT NULL,
    mime  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stats (
    id              INTEGER PRIMARY KEY CHECK (id = 1),
    total_prints    INTEGER NOT NULL DEFAULT 0,
    today_prints    INTEGER NOT NULL DEFAULT 0,
    last_print_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
