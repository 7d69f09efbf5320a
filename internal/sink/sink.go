// Package sink implements a bounded, thread-safe result accumulator
// that appends matches in completion order and drives an optional
// streaming callback.
package sink

import (
	"sync"
	"time"

	"github.com/arnegard/fq/internal/state"
)

// Result is one matched path, produced by a worker and owned by the
// sink's result list.
type Result struct {
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// StreamFunc is the streaming-result callback. Returning false requests
// cancellation. It runs under the sink's mutex, so callers must not
// re-enter the sink from within it.
type StreamFunc func(Result) bool

// Sink accumulates results in completion order and optionally streams
// them to a caller-supplied callback.
type Sink struct {
	state      *state.State
	maxResults int
	stream     StreamFunc

	mu      sync.Mutex
	results []Result
}

// New returns a Sink bound to the shared search state. maxResults of 0
// means unlimited. stream may be nil.
func New(st *state.State, maxResults int, stream StreamFunc) *Sink {
	return &Sink{state: st, maxResults: maxResults, stream: stream}
}

// Outcome is the result of Submit: whether the caller should keep
// searching or stop.
type Outcome int

const (
	Continue Outcome = iota
	Stop
)

// Submit appends result to the list in completion order, invoking the
// streaming callback under the sink mutex. should_stop short-circuits
// before the mutex is taken, the max_results cap is checked both before
// and after insertion, and a callback returning false still lets its
// triggering result land in the list.
func (s *Sink) Submit(r Result) Outcome {
	if s.state.ShouldStop() {
		return Stop
	}

	if s.maxResults > 0 && int(s.state.TotalResults()) >= s.maxResults {
		s.state.Stop()
		return Stop
	}

	outcome := Continue

	s.mu.Lock()
	if s.stream != nil {
		if !s.stream(r) {
			s.state.Stop()
			outcome = Stop
		}
	}
	s.results = append(s.results, r)
	s.state.AddResult()
	s.mu.Unlock()

	if s.maxResults > 0 && int(s.state.TotalResults()) >= s.maxResults {
		s.state.Stop()
		outcome = Stop
	}

	return outcome
}

// Results returns the accumulated result list. Ownership transfers to
// the caller; the sink must not be used again after this is called from
// the coordinator's return path.
func (s *Sink) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Count returns the number of results currently accumulated.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
