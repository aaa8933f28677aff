package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// WriteFunc is a callback that performs database writes inside a transaction.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// BatchWriter buffers write operations and commits them in batches, one
// transaction per batch, on a background goroutine.
type BatchWriter struct {
	db  *sql.DB
	cap int

	mu     sync.Mutex
	buf    []WriteFunc
	closed bool

	commitCh chan []WriteFunc
	ticker   *time.Ticker
	stop     chan struct{}
	wg       sync.WaitGroup

	// OnError is called for every failed batch. It runs on the committer goroutine.
	OnError func(error)

	errMu   sync.Mutex
	lastErr error
}

// NewBatchWriter creates a BatchWriter that flushes every bufferSize
// submissions and, if flushInterval > 0, on that interval.
func NewBatchWriter(db *sql.DB, bufferSize int, flushInterval time.Duration) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	bw := &BatchWriter{
		db:       db,
		cap:      bufferSize,
		buf:      make([]WriteFunc, 0, bufferSize),
		commitCh: make(chan []WriteFunc, 2),
		stop:     make(chan struct{}),
	}

	bw.wg.Add(1)
	go bw.committer()

	if flushInterval > 0 {
		bw.ticker = time.NewTicker(flushInterval)
		bw.wg.Add(1)
		go bw.tick()
	}
	return bw
}

// Submit enqueues a write function. It blocks while the committer is behind.
func (bw *BatchWriter) Submit(w WriteFunc) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.cap {
		bw.flushLocked()
	}
	return nil
}

// flushLocked hands the buffer to the committer. bw.mu must be held.
func (bw *BatchWriter) flushLocked() {
	if len(bw.buf) == 0 {
		return
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.cap)
	bw.commitCh <- batch
}

func (bw *BatchWriter) committer() {
	defer bw.wg.Done()
	for batch := range bw.commitCh {
		if err := bw.executeBatch(batch); err != nil {
			bw.errMu.Lock()
			if bw.lastErr == nil {
				bw.lastErr = err
			}
			bw.errMu.Unlock()
			if bw.OnError != nil {
				bw.OnError(err)
			}
		}
	}
}

func (bw *BatchWriter) executeBatch(batch []WriteFunc) error {
	ctx := context.Background()

	// Without a database the callbacks run with a nil tx (tests).
	if bw.db == nil {
		for _, w := range batch {
			if err := w(ctx, nil); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch (%d items): %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) tick() {
	defer bw.wg.Done()
	for {
		select {
		case <-bw.stop:
			return
		case <-bw.ticker.C:
			bw.mu.Lock()
			if !bw.closed {
				bw.flushLocked()
			}
			bw.mu.Unlock()
		}
	}
}

// Close flushes what is buffered, waits for every batch to commit, and
// returns the first error any batch produced.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	bw.flushLocked()
	bw.mu.Unlock()

	if bw.ticker != nil {
		bw.ticker.Stop()
	}
	close(bw.stop)
	close(bw.commitCh)
	bw.wg.Wait()

	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.lastErr
}

var ErrBatchWriterClosed = &BatchWriterError{"batch writer closed"}

type BatchWriterError struct{ msg string }

func (e *BatchWriterError) Error() string { return e.msg }
