package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			product_code TEXT NOT NULL,
			name TEXT NOT NULL,
			capacity_value REAL NOT NULL,
			capacity_unit TEXT NOT NULL,
			capacity TEXT NOT NULL,
			price REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_capacity ON products(capacity_value)`,

		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			batch_id TEXT NOT NULL,
			file_id TEXT,
			file_name TEXT,
			row_index INTEGER NOT NULL,
			raw_phone TEXT NOT NULL,
			raw_capacity TEXT NOT NULL,
			phone TEXT,
			capacity_value REAL,
			capacity_unit TEXT,
			product_id TEXT,
			product_name TEXT,
			price REAL NOT NULL DEFAULT 0,
			valid INTEGER NOT NULL,
			errors TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			FOREIGN KEY (batch_id) REFERENCES batches(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_batch ON candidates(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_file ON candidates(file_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_valid ON candidates(batch_id, valid)`,

		`CREATE TABLE IF NOT EXISTS price_tiers (
			capacity REAL PRIMARY KEY,
			price REAL NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}

	return nil
}
