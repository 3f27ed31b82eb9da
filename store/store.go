// Package store persists session map-state snapshots in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store writes and reads JSON map snapshots keyed by session id.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and ensures the snapshot table exists.
func New(connStr string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS map_snapshots (
			session_id TEXT PRIMARY KEY,
			snapshot   JSONB NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
	`
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Save upserts the snapshot for a session.
func (s *Store) Save(sessionID string, snapshot []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO map_snapshots (session_id, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE
		SET snapshot = EXCLUDED.snapshot, updated_at = NOW();
	`
	_, err := s.pool.Exec(ctx, query, sessionID, snapshot)
	return err
}

// Load returns the snapshot for one session, or ok=false when none is stored.
func (s *Store) Load(sessionID string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var snapshot []byte
	err := s.pool.QueryRow(ctx,
		"SELECT snapshot FROM map_snapshots WHERE session_id = $1", sessionID,
	).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return snapshot, true, nil
}

// LoadAll returns every stored snapshot keyed by session id.
func (s *Store) LoadAll() (map[string][]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx, "SELECT session_id, snapshot FROM map_snapshots")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make(map[string][]byte)
	for rows.Next() {
		var sessionID string
		var snapshot []byte
		if err := rows.Scan(&sessionID, &snapshot); err != nil {
			return nil, err
		}
		snapshots[sessionID] = snapshot
	}

	return snapshots, rows.Err()
}

// Delete removes a session's snapshot. Deleting a missing snapshot is not an
// error.
func (s *Store) Delete(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, "DELETE FROM map_snapshots WHERE session_id = $1", sessionID)
	return err
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
