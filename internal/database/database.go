// Package database provides the durable settings store backing the database
// credential store. It is a single key/value table reachable over SQLite for
// single-node deployments or PostgreSQL when several gateway instances share
// credentials.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"fantasy-gateway/internal/common/errors"
)

// DB wraps the sql connection with driver-appropriate settings queries.
type DB struct {
	*sql.DB
	driver string

	getQuery    string
	setQuery    string
	deleteQuery string
}

// Init opens the settings database and runs migrations. dbType is "sqlite"
// or "postgres"; dsn is the file path for sqlite and a connection string for
// postgres.
func Init(dbType, dsn string) (*DB, error) {
	var driverName string
	switch dbType {
	case "sqlite":
		driverName = "sqlite3"
	case "postgres":
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := &DB{DB: db, driver: driverName}
	wrapper.bindQueries()

	if err := wrapper.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return wrapper, nil
}

// bindQueries selects placeholder syntax per driver.
func (db *DB) bindQueries() {
	if db.driver == "pgx" {
		db.getQuery = `SELECT value FROM settings WHERE key = $1`
		db.setQuery = `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
		db.deleteQuery = `DELETE FROM settings WHERE key = $1`
		return
	}

	db.getQuery = `SELECT value FROM settings WHERE key = ?`
	db.setQuery = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	db.deleteQuery = `DELETE FROM settings WHERE key = ?`
}

func (db *DB) migrate() error {
	schema := `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if db.driver == "pgx" {
		schema = `CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}
	return nil
}

// GetSetting returns the value stored under key, or a not_found error.
func (db *DB) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, db.getQuery, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NotFoundError("setting " + key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (db *DB) SetSetting(ctx context.Context, key, value string) error {
	if _, err := db.ExecContext(ctx, db.setQuery, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (db *DB) DeleteSetting(ctx context.Context, key string) error {
	if _, err := db.ExecContext(ctx, db.deleteQuery, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
