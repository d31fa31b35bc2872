package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	//go:embed schema/postgres.sql
	postgresSchema string

	//go:embed schema/sqlite.sql
	sqliteSchema string
)

// NewDB opens a pool for the given driver, verifies it and creates the todos
// table when it does not exist yet.
func NewDB(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	if err := checkDriver(driverName); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return prepare(ctx, driverName, db)
}

// NewDBFromConnector is NewDB for connectors that build credentials per connection.
func NewDBFromConnector(ctx context.Context, driverName string, connector driver.Connector) (*sql.DB, error) {
	if err := checkDriver(driverName); err != nil {
		return nil, err
	}
	return prepare(ctx, driverName, sql.OpenDB(connector))
}

// NewTodoRepository returns the repository implementation for driverName.
func NewTodoRepository(driverName string, db *sql.DB) (TodoRepository, error) {
	switch driverName {
	case DriverPostgres:
		return NewPostgresTodo(db), nil
	case DriverSQLite:
		return NewSQLiteTodo(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
}

func checkDriver(driverName string) error {
	if driverName != DriverPostgres && driverName != DriverSQLite {
		return fmt.Errorf("unsupported database driver %q", driverName)
	}
	return nil
}

func prepare(ctx context.Context, driverName string, db *sql.DB) (*sql.DB, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := postgresSchema
	switch driverName {
	case DriverSQLite:
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// and keeps in-memory databases shared.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		schema = sqliteSchema
	case DriverPostgres:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
