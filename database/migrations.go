package database

import (
	"context"
	"database/sql"
	"fmt"
)

const moviesTableSQL = `
	CREATE TABLE IF NOT EXISTS movies (
		id SERIAL PRIMARY KEY,
		title VARCHAR(250) UNIQUE NOT NULL,
		year INTEGER NOT NULL,
		description VARCHAR(500) NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		ranking INTEGER NOT NULL,
		review VARCHAR(250),
		img_url VARCHAR(250) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies (rating DESC, id ASC);
`

func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, moviesTableSQL); err != nil {
		return fmt.Errorf("failed to run movies migration: %w", err)
	}
	return nil
}
