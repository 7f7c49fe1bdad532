// Package postgres owns database connectivity. The response store uses a pgx
// pool; the audit and definition stores use database/sql over lib/pq. Both are
// opened from the same DATABASE_URL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// Open connects a database/sql handle and verifies it with a ping.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// OpenPool connects a pgx pool and verifies it with a ping.
func OpenPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pgx pool: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the tables this service owns. Idempotent; runs once at
// startup when a durable store is configured.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS survey_definitions (
			id         TEXT PRIMARY KEY,
			spec_id    TEXT NOT NULL,
			version    INTEGER NOT NULL,
			meta       JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (spec_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS survey_responses (
			id            TEXT PRIMARY KEY,
			survey_id     TEXT NOT NULL REFERENCES survey_definitions(id),
			owner_user_id TEXT,
			token         TEXT NOT NULL UNIQUE,
			status        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS survey_answers (
			response_id TEXT NOT NULL REFERENCES survey_responses(id),
			question_id TEXT NOT NULL,
			value       JSONB NOT NULL,
			PRIMARY KEY (response_id, question_id)
		)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id         TEXT PRIMARY KEY,
			timestamp  TIMESTAMPTZ NOT NULL,
			user_id    TEXT,
			action     TEXT NOT NULL,
			entity     TEXT NOT NULL,
			entity_id  TEXT NOT NULL,
			diff       JSONB,
			request_id TEXT,
			user_agent TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
