package convert

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/japaniel/sortrid/pkg/db"
	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/ingest"
	_ "github.com/mattn/go-sqlite3"
)

// Save writes entries to path: a SQLite store for .db/.sqlite/.sqlite3, the
// canonical CSV otherwise. SQLite saves append to an existing store under a
// source named by sourceType and sourcePath. It returns the number of entries
// newly written.
func Save(ctx context.Context, path, sourceType, sourcePath string, entries []dictionary.Entry) (int, error) {
	if dictionary.IsSQLitePath(path) {
		return saveSQLite(ctx, path, sourceType, sourcePath, entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := dictionary.WriteCSV(f, entries); err != nil {
		f.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func saveSQLite(ctx context.Context, path, sourceType, sourcePath string, entries []dictionary.Entry) (int, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	if err := db.InitDB(conn); err != nil {
		return 0, fmt.Errorf("init %s: %w", path, err)
	}
	sourceID, err := db.CreateOrGetSource(conn, sourceType, sourcePath)
	if err != nil {
		return 0, fmt.Errorf("persist source: %w", err)
	}
	return ingest.WriteEntries(ctx, conn, sourceID, entries, 500)
}
