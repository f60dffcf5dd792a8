package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ping(db, timeout); err != nil {
		return nil, err
	}
	return db, nil
}

// ConnectSQLite opens an embedded database file. ":memory:" works for tests.
func ConnectSQLite(path string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite handle: %w", err)
	}
	// SQLite пишет одним соединением; in-memory база живет только внутри соединения.
	db.SetMaxOpenConns(1)

	if err := ping(db, timeout); err != nil {
		return nil, err
	}
	return db, nil
}

func ping(db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database within %v: %w (close: %v)", timeout, err, closeErr)
		}
		return fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}
	return nil
}

var schemas = map[string]string{
	DialectPostgres: `
		CREATE TABLE IF NOT EXISTS players (
			name                 TEXT PRIMARY KEY,
			position             TEXT NOT NULL,
			alternative_position TEXT[] NOT NULL DEFAULT '{}',
			skill                INTEGER NOT NULL DEFAULT 0,
			age                  INTEGER NOT NULL DEFAULT 0,
			is_guest             BOOLEAN NOT NULL DEFAULT FALSE,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	DialectSQLite: `
		CREATE TABLE IF NOT EXISTS players (
			name                 TEXT PRIMARY KEY,
			position             TEXT NOT NULL,
			alternative_position TEXT NOT NULL DEFAULT '[]',
			skill                INTEGER NOT NULL DEFAULT 0,
			age                  INTEGER NOT NULL DEFAULT 0,
			is_guest             INTEGER NOT NULL DEFAULT 0,
			created_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
}

// EnsureSchema creates the players table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect string) error {
	ddl, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("unknown sql dialect %q", dialect)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create players table (%s): %w", dialect, err)
	}
	return nil
}
