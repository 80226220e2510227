package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS comm_logs (
  id INTEGER PRIMARY KEY,
  transcript TEXT NOT NULL,
  summary TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comm_logs_created_at ON comm_logs(created_at);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add summary_source column so the dashboard can show
	// whether a summary came from the AI provider or the local fallback
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('comm_logs') WHERE name = 'summary_source'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check summary_source column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE comm_logs ADD COLUMN summary_source TEXT NOT NULL DEFAULT 'fallback'`); err != nil {
			return fmt.Errorf("add summary_source column: %w", err)
		}
	}

	return nil
}
