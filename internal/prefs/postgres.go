package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists voice preferences in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS voice_preferences (
		identity TEXT PRIMARY KEY,
		voice_id TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init schema failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) VoiceFor(ctx context.Context, identity string) (string, error) {
	var voiceID string
	err := s.pool.QueryRow(ctx,
		`SELECT voice_id FROM voice_preferences WHERE identity=$1`,
		identity,
	).Scan(&voiceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query voice preference: %w", err)
	}
	return voiceID, nil
}

func (s *PostgresStore) SetVoice(ctx context.Context, identity, voiceID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO voice_preferences (identity, voice_id, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (identity) DO UPDATE SET voice_id=EXCLUDED.voice_id, updated_at=EXCLUDED.updated_at`,
		identity,
		voiceID,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save voice preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
