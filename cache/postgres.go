package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists entries in the card_results table.
type PostgresStore struct {
	db *sql.DB

	schemaMu    sync.Mutex
	schemaReady bool
}

// NewPostgres opens dsn with the pgx driver and checks the connection.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("cache: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: ping postgres: %w", err)
	}
	s := NewPostgresFromDB(db)
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: schema: %w", err)
	}
	return s, nil
}

// NewPostgresFromDB wraps an existing handle. The table is created on first
// use.
func NewPostgresFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ensureSchema creates the table. A failed attempt, for example on a
// cancelled request context, is retried by the next caller.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS card_results (
  fingerprint CHAR(8) PRIMARY KEY,
  result TEXT NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);`); err != nil {
		return err
	}
	s.schemaReady = true
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (Entry, error) {
	if err := checkKey(key); err != nil {
		return Entry{}, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return Entry{}, fmt.Errorf("cache: schema: %w", err)
	}

	var entry Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT result, created_at FROM card_results WHERE fingerprint = $1`, key,
	).Scan(&entry.Text, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return entry, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, entry Entry) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("cache: schema: %w", err)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO card_results (fingerprint, result, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (fingerprint)
DO UPDATE SET result = EXCLUDED.result, created_at = EXCLUDED.created_at`,
		key, entry.Text, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
