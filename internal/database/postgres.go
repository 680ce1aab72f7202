package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/steodhiambo/movie-discovery-app/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS watchlist_items (
			id SERIAL PRIMARY KEY,
			tmdb_id INTEGER NOT NULL,
			kind VARCHAR(10) NOT NULL,
			title VARCHAR(500) NOT NULL,
			overview TEXT DEFAULT '',
			release_date VARCHAR(10) DEFAULT '',
			poster_url VARCHAR(500) DEFAULT '',
			backdrop_url VARCHAR(500) DEFAULT '',
			vote_average DOUBLE PRECISION DEFAULT 0,
			vote_count INTEGER DEFAULT 0,
			genre_ids INTEGER[] DEFAULT '{}',
			popularity DOUBLE PRECISION DEFAULT 0,
			original_language VARCHAR(10) DEFAULT '',
			ratings JSONB,
			aggregated_score DOUBLE PRECISION DEFAULT 0,
			data_source VARCHAR(20) DEFAULT 'tmdb',
			actors TEXT[] DEFAULT '{}',
			director VARCHAR(200) DEFAULT '',
			language VARCHAR(50) DEFAULT '',
			added_at TIMESTAMP NOT NULL DEFAULT NOW(),
			watched BOOLEAN NOT NULL DEFAULT FALSE,
			watched_at TIMESTAMP,
			UNIQUE (tmdb_id, kind)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_added_at
			ON watchlist_items (added_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
