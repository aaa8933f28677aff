package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/japaniel/sortrid/pkg/db"
	"github.com/japaniel/sortrid/pkg/dictionary"
)

// WriteEntries stores entries under sourceID in batched transactions and
// returns how many were new.
func WriteEntries(ctx context.Context, conn *sql.DB, sourceID int64, entries []dictionary.Entry, batchSize int) (int, error) {
	bw := NewBatchWriter(conn, batchSize, 100*time.Millisecond)

	var inserted int64
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			_ = bw.Close()
			return int(atomic.LoadInt64(&inserted)), err
		}
		err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			ok, err := db.InsertEntry(tx, sourceID, e.OrigWord, e.SortedWord)
			if err != nil {
				return err
			}
			if ok {
				atomic.AddInt64(&inserted, 1)
			}
			return nil
		})
		if err != nil {
			_ = bw.Close()
			return int(atomic.LoadInt64(&inserted)), err
		}
	}
	if err := bw.Close(); err != nil {
		return int(atomic.LoadInt64(&inserted)), fmt.Errorf("write entries: %w", err)
	}
	return int(atomic.LoadInt64(&inserted)), nil
}
