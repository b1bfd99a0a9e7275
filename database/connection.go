package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"Reelrank/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the pgx-backed pool and verifies it with a ping.
// The caller owns the returned handle and closes it on shutdown.
func Connect(ctx context.Context, cfg *config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(max(cfg.MaxConns/2, 1))
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
