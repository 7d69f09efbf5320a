package export

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnegard/fq/internal/sink"

	_ "modernc.org/sqlite"
)

func TestWriterStreamsResultsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	w.Stream(sink.Result{Path: "/tmp/a.txt", IsDir: false, Size: 10, ModTime: time.Now()})
	w.Stream(sink.Result{Path: "/tmp/dir", IsDir: true, ModTime: time.Now()})

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
}

func TestWriterFlushesAcrossBatchBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	w.batchSize = 2

	for i := 0; i < 5; i++ {
		w.Stream(sink.Result{Path: filepath.Join("/tmp", string(rune('a'+i))), ModTime: time.Now()})
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 rows across batch boundaries, got %d", count)
	}
}

func TestWriterFlushesPartialBatchOnInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")

	w, err := OpenWithOptions(path, 100, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("OpenWithOptions: %v", err)
	}
	defer w.Close()

	w.Stream(sink.Result{Path: "/tmp/slow.txt", Size: 1, ModTime: time.Now()})

	// Row sits inside a single, not-yet-batch-full transaction; give the
	// ticker time to flush it without crossing batchSize.
	time.Sleep(100 * time.Millisecond)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the partial batch to be flushed by the ticker, got %d rows", count)
	}
}
