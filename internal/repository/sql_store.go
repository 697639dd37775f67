package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Dialect selects the DDL and upsert syntax of an SQL backend.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) createTable() string {
	if d == DialectPostgres {
		return `CREATE TABLE IF NOT EXISTS ledger_blobs (
			name VARCHAR(32) PRIMARY KEY,
			payload BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
	}
	return `CREATE TABLE IF NOT EXISTS ledger_blobs (
		name VARCHAR(32) NOT NULL PRIMARY KEY,
		payload LONGBLOB NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`
}

func (d Dialect) upsert() string {
	if d == DialectPostgres {
		return `INSERT INTO ledger_blobs (name, payload, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	}
	return `INSERT INTO ledger_blobs (name, payload, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`
}

// SQLStore keeps one row per blob in the ledger_blobs table. Each PutBlob
// is a single upsert statement and therefore atomic on its own.
type SQLStore struct {
	db      *sqlx.DB
	dialect Dialect
	ready   bool
}

// NewSQLStore returns a store on db. The table is created on first use.
func NewSQLStore(db *sqlx.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// EnsureSchema creates ledger_blobs when it does not exist yet. Calling it
// again is a no-op.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if s.ready {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable()); err != nil {
		return fmt.Errorf("creating ledger_blobs table: %w", err)
	}
	s.ready = true
	return nil
}

// Save writes the snapshot blobs in order.
func (s *SQLStore) Save(ctx context.Context, snap Snapshot) error {
	return saveSnapshot(ctx, s, snap)
}

// Load reads the snapshot blobs; missing rows load as empty state.
func (s *SQLStore) Load(ctx context.Context) (Snapshot, error) {
	return loadSnapshot(ctx, s)
}

// PutBlob upserts the row for name.
func (s *SQLStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(s.dialect.upsert()), name, data, time.Now().UTC())
	return err
}

// GetBlob selects the row for name; sql.ErrNoRows means absent.
func (s *SQLStore) GetBlob(ctx context.Context, name string) ([]byte, bool, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, false, err
	}
	var payload []byte
	err := s.db.GetContext(ctx, &payload, s.db.Rebind("SELECT payload FROM ledger_blobs WHERE name = ?"), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}
