package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/lbatista/espalier/pkg/domain"
)

// Store implements ports.SessionStore on Postgres: one row per session
// holding the whole state as a JSONB document. Whole-value semantics match
// the store contract, so an upsert replaces the previous document entirely.
type Store struct {
	db    *sqlx.DB
	table string
}

type Option func(*Store)

// WithTable overrides the table name (default "questionnaire_sessions").
func WithTable(table string) Option {
	return func(s *Store) {
		s.table = table
	}
}

// New opens a Postgres connection and prepares the session table.
func New(dsn string, opts ...Option) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewFromDB(db, opts...)
}

// NewFromDB wraps an existing connection.
func NewFromDB(db *sqlx.DB, opts ...Option) (*Store, error) {
	store := &Store{db: db, table: "questionnaire_sessions"}
	for _, opt := range opts {
		opt(store)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		session_id TEXT PRIMARY KEY,
		state      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, store.table)
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to prepare session table: %w", err)
	}
	return store, nil
}

// Save upserts the whole session document.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.SessionState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (session_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE SET state = $2, updated_at = now()`, s.table)
	if _, err := s.db.ExecContext(ctx, query, sessionID, doc); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads the session document.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	var doc []byte
	query := fmt.Sprintf(`SELECT state FROM %s WHERE session_id = $1`, s.table)
	if err := s.db.GetContext(ctx, &doc, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}

// Delete removes the session row.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE session_id = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
