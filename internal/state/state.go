// Package state holds the shared, concurrently-accessed counters and
// cancellation flag of one search. It is the single source of truth
// both the sink and the worker pool observe.
package state

import "sync/atomic"

// State is shared by reference among the coordinator, the sink, and
// every worker for the lifetime of one search.
type State struct {
	totalResults   atomic.Int64
	processedFiles atomic.Int64
	queuedDirs     atomic.Int64
	shouldStop     atomic.Bool
}

// New returns a freshly zeroed State.
func New() *State {
	return &State{}
}

// TotalResults returns the current result count.
func (s *State) TotalResults() int64 { return s.totalResults.Load() }

// AddResult increments the result counter by one.
func (s *State) AddResult() { s.totalResults.Add(1) }

// ProcessedFiles returns the current processed-file count.
func (s *State) ProcessedFiles() int64 { return s.processedFiles.Load() }

// AddProcessedFile increments the processed-file counter by one.
func (s *State) AddProcessedFile() { s.processedFiles.Add(1) }

// QueuedDirs returns the current number of directory jobs that have been
// made visible to workers but have not finished their teardown.
func (s *State) QueuedDirs() int64 { return s.queuedDirs.Load() }

// AddQueuedDir increments the queued-directory counter. Must be called
// before a job is made visible to any worker.
func (s *State) AddQueuedDir() { s.queuedDirs.Add(1) }

// DoneQueuedDir decrements the queued-directory counter. Must be called
// exactly once as a job's owning worker returns from expanding it,
// whether by success, skip, or error.
func (s *State) DoneQueuedDir() { s.queuedDirs.Add(-1) }

// ShouldStop reports the sticky cancellation flag.
func (s *State) ShouldStop() bool { return s.shouldStop.Load() }

// Stop sets the sticky cancellation flag. Idempotent: calling it
// multiple times is equivalent to calling it once.
func (s *State) Stop() { s.shouldStop.Store(true) }

// StopFlag exposes the underlying flag for components (like the pool)
// that need to share the exact same atomic cell rather than a copy.
func (s *State) StopFlag() *atomic.Bool { return &s.shouldStop }
