package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS user_bookstores (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    address     TEXT NOT NULL,
    latitude    DOUBLE PRECISION NOT NULL,
    longitude   DOUBLE PRECISION NOT NULL,
    category    TEXT NOT NULL,
    phone       TEXT,
    open_time   TEXT,
    close_time  TEXT,
    closed_days TEXT,
    description TEXT,
    created_by  TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY created_at DESC is used by every listing query
		`CREATE INDEX IF NOT EXISTS idx_user_bookstores_created_at ON user_bookstores(created_at DESC)`,
		// Per-owner listing
		`CREATE INDEX IF NOT EXISTS idx_user_bookstores_created_by ON user_bookstores(created_by)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all user-registered bookstores.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_user_bookstores_created_at`,
		`DROP INDEX IF EXISTS idx_user_bookstores_created_by`,
		`DROP TABLE IF EXISTS user_bookstores CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
