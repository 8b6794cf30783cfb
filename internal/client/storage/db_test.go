package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_SQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "app.db")

	db, err := InitDatabase(ctx, config.DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "kv"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite))
	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite), "second run must be a no-op")
	assert.True(t, tableExists(t, db, "kv"))
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations(context.Background(), nil, "mysql")
	require.ErrorIs(t, err, common.ErrorUnknownDriver)

	_, err = InitDatabase(context.Background(), "mysql", "x")
	require.ErrorIs(t, err, common.ErrorUnknownDriver)
}

func TestInitDatabase_PostgresUsesPostgresMigrations(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	db, err := InitDatabase(context.Background(), config.DriverPostgres, "postgres://u:p@127.0.0.1:1/db")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "postgres", gotDir)
}

func TestInitDatabase_MigrationError(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := InitDatabase(context.Background(), config.DriverPostgres, "postgres://u:p@127.0.0.1:1/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate postgres: boom")
}
