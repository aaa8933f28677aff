package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_type TEXT NOT NULL,
	path TEXT NOT NULL DEFAULT '',
	added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(source_type, path)
);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id INTEGER REFERENCES sources(id),
	orig_word TEXT NOT NULL,
	sorted_word TEXT NOT NULL,
	UNIQUE(orig_word, sorted_word)
);

CREATE INDEX IF NOT EXISTS idx_entries_sorted_word ON entries(sorted_word);
`

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
