package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/migrations"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

type sqlDriver struct {
	name    string // database/sql driver
	dialect string // goose dialect
	dir     string // migrations directory
}

var sqlDrivers = map[string]sqlDriver{
	config.DriverSQLite:   {name: "sqlite", dialect: "sqlite3", dir: migrations.SQLiteDir},
	config.DriverPostgres: {name: "pgx", dialect: "pgx", dir: migrations.PostgresDir},
}

// RunMigrations applies the embedded migrations for driver to db.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := sqlDrivers[driver]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrorUnknownDriver, driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("migrate %s: %w", driver, err)
	}
	return nil
}

// InitDatabase opens a SQL database for driver and brings its schema up to
// date. For SQLite, dsn is a file path and its directory is created first.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	d, ok := sqlDrivers[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrorUnknownDriver, driver)
	}

	if driver == config.DriverSQLite {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.name, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
