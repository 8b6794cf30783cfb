package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
)

type queries struct {
	get       string
	getLocked string
	seed      string
	set       string
	remove    string
}

var sqliteQueries = queries{
	get:       `SELECT value FROM kv WHERE key = ?`,
	getLocked: `SELECT value FROM kv WHERE key = ?`,
	seed: `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO NOTHING
	`,
	set: `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
	remove: `DELETE FROM kv WHERE key = ?`,
}

var postgresQueries = queries{
	get:       `SELECT value FROM kv WHERE key = $1`,
	getLocked: `SELECT value FROM kv WHERE key = $1 FOR UPDATE`,
	seed: `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`,
	set: `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`,
	remove: `DELETE FROM kv WHERE key = $1`,
}

// SQLStore keeps entries in a single kv(key, value) table. The schema is
// created by the goose migrations in internal/client/migrations.
type SQLStore struct {
	db *sql.DB
	q  queries
}

func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, q: sqliteQueries}
}

func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, q: postgresQueries}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.get(ctx, s.db, s.q.get, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.set(ctx, s.db, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q.remove, key)
	if err != nil {
		return fmt.Errorf("failed to remove kv[%s]: %w", key, err)
	}
	return nil
}

// Update reads and rewrites key inside one transaction. An empty row is
// seeded first so there is always a row to lock: on PostgreSQL a concurrent
// seed blocks until this transaction ends, and the row is then held with
// FOR UPDATE. On SQLite the seed takes the write lock up front. The seed is
// rolled back with everything else when fn fails, and fn sees nil for an
// absent or empty value.
func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, s.q.seed, key, []byte{}); err != nil {
			return err
		}
		cur, err := s.get(ctx, tx, s.q.getLocked, key)
		if err != nil {
			return err
		}
		if len(cur) == 0 {
			cur = nil
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		return s.set(ctx, tx, key, next)
	})
	if err != nil {
		return fmt.Errorf("failed to update kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) get(ctx context.Context, db dbx.DBTX, query, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *SQLStore) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, s.q.set, key, value)
	return err
}
