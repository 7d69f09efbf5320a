package search

import (
	goruntime "runtime"
	"time"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/pool"
	"github.com/arnegard/fq/internal/sink"
	"github.com/arnegard/fq/internal/state"
)

// ExitCode is the coordinator's terminal status.
type ExitCode int

const (
	// Completed means the search finished normally; partial results
	// from a callback- or cap-triggered cancellation still count as
	// completed.
	Completed ExitCode = 0
	// SetupFailure means the criteria failed validation; no partial
	// results are meaningful.
	SetupFailure ExitCode = -1
	// TimedOut means the wall-clock timeout elapsed; partial results
	// are still valid.
	TimedOut ExitCode = -2
)

// ProgressFunc is polled while the search is in flight. Returning false
// requests cancellation (forwarded to the pool's own progress hook).
type ProgressFunc func(processedFiles, queuedDirs, totalResults int64) bool

// Options bundles the optional callbacks and knobs the coordinator
// accepts alongside the validated criteria.
type Options struct {
	Stream   sink.StreamFunc
	Progress ProgressFunc
}

// Result is everything the coordinator hands back to its caller: the
// materialised result list, the exit code, and a stats snapshot for the
// --stats CLI flag.
type Result struct {
	Results []sink.Result
	Code    ExitCode
	Stats   pool.Stats
}

// Search is the full coordinator entry point: it validates criteria,
// seeds the root job, runs the pool to quiescence or timeout, and
// returns the accumulated results alongside an exit code.
func Search(c *criteria.Criteria, opts Options) Result {
	if err := criteria.Validate(c); err != nil {
		return Result{Code: SetupFailure}
	}

	st := state.New()
	sk := sink.New(st, c.MaxResults, opts.Stream)

	threads := criteria.EffectiveThreads(c, goruntime.GOMAXPROCS(0))

	cancelled := false
	var poolProgress pool.ProgressFunc
	if opts.Progress != nil {
		poolProgress = func(_, _ int64) bool {
			if !opts.Progress(st.ProcessedFiles(), st.QueuedDirs(), st.TotalResults()) {
				cancelled = true
				return false
			}
			return true
		}
	}

	p := pool.Create(pool.Config{
		MaxThreads: threads,
		ShouldStop: st.StopFlag(),
		Progress:   poolProgress,
	})

	rt := &runtime{criteria: c, pool: p, sink: sk, state: st}

	root := job{path: c.RootPath, depth: 0}
	st.AddQueuedDir()
	if !p.Submit(func() { root.execute(rt) }) {
		root.execute(rt)
	}

	completed := p.Wait(c.Timeout)
	timedOut := !completed && !cancelled
	if !completed {
		st.Stop()
		p.Wait(5 * time.Second)
	}

	stats := p.StatsSnapshot()
	p.Destroy()

	code := Completed
	if timedOut {
		code = TimedOut
	}

	return Result{Results: sk.Results(), Code: code, Stats: stats}
}

// SearchFast is the simpler wrapper entry point: the full coordinator
// with no callbacks and no timeout observation.
func SearchFast(c *criteria.Criteria) Result {
	c2 := *c
	c2.Timeout = 0
	return Search(&c2, Options{})
}

// Cancel sets st's sticky stop flag; idempotent. Search builds its own
// State internally and does not expose it, so Cancel does not reach a
// search started through Search.
func Cancel(st *state.State) {
	st.Stop()
}
