// Package database manages the PostgreSQL connection pool and the
// schema the club portal relies on.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates and validates a pgxpool connection pool.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// schema is applied on startup. Statements are idempotent so restarting
// the server against an existing database is safe.
//
// The UNIQUE (event_id, user_id) constraint on event_participants is
// load-bearing: joins use INSERT ... ON CONFLICT DO NOTHING against it,
// which is what makes membership exactly-once under concurrent joins.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       UUID PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS event (
		event_id   UUID PRIMARY KEY,
		title      TEXT NOT NULL,
		event_date TIMESTAMPTZ,
		created_by TEXT NOT NULL,
		creator_id UUID NOT NULL REFERENCES users(user_id),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS event_participants (
		event_id   UUID NOT NULL REFERENCES event(event_id),
		user_id    UUID NOT NULL REFERENCES users(user_id),
		user_email TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'participant',
		joined_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (event_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS xp_history (
		record_id  UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(user_id),
		xp_change  INTEGER NOT NULL,
		reason     TEXT NOT NULL DEFAULT '',
		time_give  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_xp_history_user ON xp_history (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_event_participants_user ON event_participants (user_id)`,
}

// EnsureSchema creates the portal tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
