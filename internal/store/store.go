// Package store owns the SQLite file shared by the tracker and the viewer.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "mpressed"
	dbFileName = "mpressed.db"

	// busyTimeoutMs lets the reader wait out the tracker's short write
	// transactions instead of failing with SQLITE_BUSY.
	busyTimeoutMs = 5000
)

// ErrNotFound is returned by OpenExisting when the database file is missing.
var ErrNotFound = errors.New("database not found")

// Manager holds the process-wide database handle.
type Manager struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the database location under the user config directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the database at path and ensures the schema.
// The tracker uses this; it is the only writer.
func Open(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	m, err := open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(m.db); err != nil {
		m.db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return m, nil
}

// OpenExisting opens a database that must already exist. The viewer uses this
// so that a missing store is reported instead of silently created.
func OpenExisting(path string) (*Manager, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	m, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := m.db.Ping(); err != nil {
		m.db.Close()
		return nil, err
	}
	return m, nil
}

func open(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	// One connection: the tracker is a single writer and the viewer queries
	// inline, so there is nothing to gain from a pool.
	db.SetMaxOpenConns(1)
	return &Manager{db: db, path: path}, nil
}

// dsn builds the SQLite URI for path. The path is escaped so that '?', '#'
// and '%' in it are not read as URI syntax.
func dsn(path string) string {
	u := url.URL{Path: path}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		u.EscapedPath(), busyTimeoutMs)
}

// newWithDB wraps an already opened database. Used by tests with :memory:.
func newWithDB(db *sql.DB) (*Manager, error) {
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Close closes the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}

// DB returns the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Path returns the database file path, or "" for in-memory stores.
func (m *Manager) Path() string {
	return m.path
}

// Size returns the size of the database file in bytes.
func (m *Manager) Size() int64 {
	if m.path == "" {
		return 0
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return 0
	}
	return info.Size()
}
