package dictionary

import (
	"database/sql"
	"fmt"

	"github.com/japaniel/sortrid/pkg/db"
	_ "github.com/mattn/go-sqlite3"
)

// loadSQLite reads every entry of a dictionary store in insertion order.
func loadSQLite(path string) ([]Entry, error) {
	// mode=ro keeps a typo in a preset from creating an empty database.
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := db.LoadEntries(conn)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{OrigWord: r.OrigWord, SortedWord: r.SortedWord})
	}
	return entries, nil
}
