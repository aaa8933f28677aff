package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// CreateOrGetSource returns existing source id or inserts a new source and returns its id.
func CreateOrGetSource(db DBExecutor, sourceType, path string) (int64, error) {
	trimmedSourceType := strings.TrimSpace(sourceType)
	if trimmedSourceType == "" {
		return 0, fmt.Errorf("sourceType must be non-empty")
	}

	const maxRetries = 3

	var id int64
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := db.QueryRow(
			`SELECT id FROM sources WHERE source_type = ? AND path = ?`,
			trimmedSourceType, path,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}

		res, err := db.Exec(
			`INSERT INTO sources (source_type, path) VALUES (?, ?)`,
			trimmedSourceType, path,
		)
		if err != nil {
			// Another writer inserted the same source; retry the SELECT.
			if isUniqueConstraintErr(err) {
				continue
			}
			return 0, err
		}
		return res.LastInsertId()
	}

	return 0, fmt.Errorf("could not create or get source after %d retries", maxRetries)
}

// InsertEntry stores one record. Duplicate (orig_word, sorted_word) pairs are
// ignored; inserted reports whether a new row was written.
func InsertEntry(db DBExecutor, sourceID int64, origWord, sortedWord string) (inserted bool, err error) {
	if origWord == "" {
		return false, fmt.Errorf("origWord must be non-empty")
	}
	res, err := db.Exec(
		`INSERT OR IGNORE INTO entries (source_id, orig_word, sorted_word) VALUES (?, ?, ?)`,
		nullableInt64(sourceID), origWord, sortedWord,
	)
	if err != nil {
		return false, fmt.Errorf("insert entry %s: %w", origWord, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// nullableInt64 returns nil for 0 (meaning no source) else the value.
func nullableInt64(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

// LoadEntries returns every entry in insertion order.
func LoadEntries(db DBExecutor) ([]Entry, error) {
	rows, err := db.Query(`SELECT id, source_id, orig_word, sorted_word FROM entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var src sql.NullInt64
		if err := rows.Scan(&e.ID, &src, &e.OrigWord, &e.SortedWord); err != nil {
			return nil, err
		}
		if src.Valid {
			e.SourceID = src.Int64
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountEntries returns the number of stored entries, optionally restricted to one source.
func CountEntries(db DBExecutor, sourceID int64) (int, error) {
	var n int
	var err error
	if sourceID > 0 {
		err = db.QueryRow(`SELECT COUNT(*) FROM entries WHERE source_id = ?`, sourceID).Scan(&n)
	} else {
		err = db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	}
	return n, err
}
