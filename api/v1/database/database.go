package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver
)

func Connect(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// single writer: serialize through one connection so concurrent
	// requests queue instead of failing with SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err2 := db.Ping(); err2 != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err2)
	}

	_, err3 := db.Exec(`PRAGMA journal_mode = WAL;`)
	if err3 != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err3)
	}

	_, err4 := db.Exec(`PRAGMA busy_timeout = 5000;`)
	if err4 != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err4)
	}

	if err5 := createSchema(db); err5 != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err5)
	}

	return db, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			description TEXT NOT NULL,
			duration INTEGER NOT NULL,
			date INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(user_id, date);
	`)

	return err
}
