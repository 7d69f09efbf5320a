// Package export writes one search's results to a fresh SQLite file,
// batching inserts the way a bulk-loading ingester batches scan
// entries: a transaction commits once it reaches DefaultBatchSize rows,
// or once DefaultFlushInterval elapses since the last commit, whichever
// comes first. Writer is not building a persistent index: the file is
// produced once, forward-only, for a single invocation, and fq never
// reads it back.
package export

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/arnegard/fq/internal/sink"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	path     TEXT PRIMARY KEY,
	is_dir   INTEGER NOT NULL,
	size     INTEGER NOT NULL,
	mtime    INTEGER NOT NULL
);
`

const insertSQL = `INSERT OR REPLACE INTO results (path, is_dir, size, mtime) VALUES (?, ?, ?, ?)`

// DefaultBatchSize batches bulk inserts, scaled down since search
// result volumes are typically much smaller than full filesystem
// scans.
const DefaultBatchSize = 500

// DefaultFlushInterval bounds how long a partial batch can sit
// uncommitted when results trickle in slower than DefaultBatchSize.
const DefaultFlushInterval = 2 * time.Second

// Writer batches SearchResults into a SQLite file opened fresh for this
// run.
type Writer struct {
	db        *sql.DB
	batchSize int

	mu    sync.Mutex
	stmt  *sql.Stmt
	tx    *sql.Tx
	batch int

	tickerDone chan struct{}
}

// Open creates (or truncates) path and prepares it to receive results.
// A background ticker flushes a partial batch every flushInterval so a
// slow trickle of results still lands on disk promptly.
func Open(path string) (*Writer, error) {
	return OpenWithOptions(path, DefaultBatchSize, DefaultFlushInterval)
}

// OpenWithOptions is Open with an explicit batch size and flush interval.
func OpenWithOptions(path string, batchSize int, flushInterval time.Duration) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: init schema: %w", err)
	}

	w := &Writer{db: db, batchSize: batchSize, tickerDone: make(chan struct{})}
	if err := w.beginBatch(); err != nil {
		db.Close()
		return nil, err
	}

	if flushInterval > 0 {
		go w.runTicker(flushInterval)
	}
	return w, nil
}

func (w *Writer) runTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.tickerDone:
			return
		case <-ticker.C:
			w.mu.Lock()
			if w.batch > 0 {
				w.flushLocked()
			}
			w.mu.Unlock()
		}
	}
}

func (w *Writer) beginBatch() error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("export: begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("export: prepare insert: %w", err)
	}
	w.tx = tx
	w.stmt = stmt
	w.batch = 0
	return nil
}

// Stream adapts Writer into a sink.StreamFunc so it can be passed
// directly as the coordinator's streaming callback alongside (or
// instead of) any other consumer.
func (w *Writer) Stream(r sink.Result) bool {
	isDir := 0
	if r.IsDir {
		isDir = 1
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.stmt.Exec(r.Path, isDir, r.Size, r.ModTime.Unix()); err != nil {
		return true // a write error shouldn't abort the whole search
	}

	w.batch++
	if w.batch >= w.batchSize {
		w.flushLocked()
	}
	return true
}

// flushLocked commits the current transaction and opens the next one.
// Callers must hold w.mu.
func (w *Writer) flushLocked() {
	if w.stmt != nil {
		w.stmt.Close()
	}
	if w.tx != nil {
		w.tx.Commit()
	}
	w.beginBatch()
}

// Close stops the flush ticker, commits any pending batch, and closes
// the underlying database.
func (w *Writer) Close() error {
	close(w.tickerDone)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stmt != nil {
		w.stmt.Close()
	}
	if w.tx != nil {
		w.tx.Commit()
	}
	return w.db.Close()
}
