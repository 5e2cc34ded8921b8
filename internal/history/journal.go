package history

import (
	"database/sql"
	"errors"
	"time"
)

// Record appends a closed pane and trims the journal to its limit.
func (db *DB) Record(e Entry) error {
	at := e.ClosedAt
	if at.IsZero() {
		at = db.now()
	}
	_, err := db.conn.Exec(
		"INSERT INTO closed (kind, arg, title, closed_at) VALUES (?, ?, ?, ?)",
		e.Kind, e.Arg, e.Title, at.UnixNano(),
	)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		DELETE FROM closed WHERE id NOT IN (
			SELECT id FROM closed ORDER BY closed_at DESC, id DESC LIMIT ?
		)`, db.limit)
	return err
}

// Pop removes and returns the most recently closed pane. ok is false when
// the journal is empty.
func (db *DB) Pop() (e Entry, ok bool, err error) {
	return db.take("SELECT id, kind, arg, title, closed_at FROM closed ORDER BY closed_at DESC, id DESC LIMIT 1")
}

// Take removes and returns the entry with the given id. ok is false when it
// is no longer in the journal.
func (db *DB) Take(id int64) (e Entry, ok bool, err error) {
	return db.take("SELECT id, kind, arg, title, closed_at FROM closed WHERE id = ?", id)
}

func (db *DB) take(query string, args ...any) (e Entry, ok bool, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Entry{}, false, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	e, err = scanEntry(tx.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if _, err := tx.Exec("DELETE FROM closed WHERE id = ?", e.ID); err != nil {
		return Entry{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Recent lists up to limit entries, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	rows, err := db.conn.Query("SELECT id, kind, arg, title, closed_at FROM closed ORDER BY closed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var at int64
	if err := s.Scan(&e.ID, &e.Kind, &e.Arg, &e.Title, &at); err != nil {
		return Entry{}, err
	}
	e.ClosedAt = time.Unix(0, at)
	return e, nil
}
