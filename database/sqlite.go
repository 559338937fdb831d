package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverCgo is the mattn/go-sqlite3 driver
	DriverCgo = "sqlite3"
	// DriverPureGo is the modernc.org/sqlite driver
	DriverPureGo = "sqlite"
)

// Options describes how to open the store
type Options struct {
	Driver       string
	Path         string
	MaxOpenConns int
}

// OpenDB opens a pooled connection to the SQLite database
func OpenDB(opts Options) (*sql.DB, error) {
	dsn, err := dataSourceName(opts.Driver, opts.Path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitializeDatabase opens the database connection and creates the schema
func InitializeDatabase(opts Options) (*sql.DB, error) {
	db, err := OpenDB(opts)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// dataSourceName adds a busy timeout so concurrent inserts from the pool
// wait on the file lock instead of failing immediately.
func dataSourceName(driver, path string) (string, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	switch driver {
	case DriverCgo:
		return path + sep + "_busy_timeout=5000", nil
	case DriverPureGo:
		return path + sep + "_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
