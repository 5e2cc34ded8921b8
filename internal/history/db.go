// Package history keeps a journal of closed panes in SQLite so they can be
// reopened, most recent first.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS closed (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    arg TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    closed_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_closed_at ON closed(closed_at);
`

// DefaultLimit is how many entries Record keeps.
const DefaultLimit = 200

// Entry is one closed pane.
type Entry struct {
	ID       int64
	Kind     string
	Arg      string
	Title    string
	ClosedAt time.Time
}

// DB wraps the SQLite database connection.
type DB struct {
	conn  *sql.DB
	limit int
	now   func() time.Time
}

// Open opens or creates the journal at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return open(path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(2000)")
}

// OpenMemory opens an in-memory journal, used for ssh sessions and tests.
func OpenMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One connection keeps an in-memory database shared and serialises
	// writers from several sessions.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn, limit: DefaultLimit, now: time.Now}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
