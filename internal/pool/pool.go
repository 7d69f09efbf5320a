// Package pool implements a fixed-size set of workers dequeuing from
// one FIFO job list, with a saturation fallback that runs a job inline
// when the pool refuses it (only happens once shutdown has begun; the
// queue itself is unbounded).
//
// Idle workers block on a sync.Cond in place of a counted semaphore.
// Wait does not block on a done-event: it polls the atomic counters
// every PollInterval until they reach zero.
package pool

import (
	"sync"
	"sync/atomic"
	"time"
)

// Job is a unit of work the pool executes. A worker that cannot enqueue
// a derived job (pool shutting down) must run it inline on its own
// stack instead of dropping it.
type Job func()

// Stats is a point-in-time snapshot of the pool's bookkeeping counters,
// captured by the coordinator just before it destroys the pool.
type Stats struct {
	Workers            int
	TotalSubmitted     int64
	QueuedWorkItems    int64
	ActiveWorkItems    int64
	CompletedWorkItems int64
}

// ProgressFunc is polled from Pool.Wait. Returning false requests
// cancellation of the whole search.
type ProgressFunc func(completed, active int64) bool

// Config configures pool creation.
type Config struct {
	// MaxThreads is the worker count. Create turns a value <= 0 into 1
	// (criteria.EffectiveThreads handles the "auto, minimum 4" rule
	// before this is set).
	MaxThreads int

	// ShouldStop is the shared sticky cancellation flag forwarded from
	// the search's state.
	ShouldStop *atomic.Bool

	// Progress, if set, is polled periodically by Wait.
	Progress ProgressFunc

	// PollInterval overrides the default 50ms poll slice used by Wait;
	// zero uses the default. Tests shrink this to avoid slow suites.
	PollInterval time.Duration
}

type node struct {
	job  Job
	next *node
}

// Pool is a fixed-size set of workers draining one FIFO job queue.
type Pool struct {
	cfg Config

	mu   sync.Mutex
	cond *sync.Cond
	head *node
	tail *node

	shutdownRequested bool

	totalSubmitted     atomic.Int64
	queuedWorkItems    atomic.Int64
	activeWorkItems    atomic.Int64
	completedWorkItems atomic.Int64

	wg sync.WaitGroup
}

const defaultPollInterval = 50 * time.Millisecond

// Create spins up cfg.MaxThreads workers (minimum 1). In Go, goroutine
// spawn itself cannot fail, so the only degenerate case left is zero
// effective workers, which Create normalizes away.
func Create(cfg Config) *Pool {
	if cfg.ShouldStop == nil {
		cfg.ShouldStop = &atomic.Bool{}
	}
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	p := &Pool{cfg: cfg}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < cfg.MaxThreads; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues job for a worker to pick up. It refuses (returns
// false) once the shared should_stop flag is set; the caller is then
// responsible for running job inline to preserve any counter invariant
// it represents.
func (p *Pool) Submit(job Job) bool {
	if p.cfg.ShouldStop.Load() {
		return false
	}

	n := &node{job: job}

	p.mu.Lock()
	if p.cfg.ShouldStop.Load() {
		p.mu.Unlock()
		return false
	}
	if p.tail != nil {
		p.tail.next = n
		p.tail = n
	} else {
		p.head = n
		p.tail = n
	}
	p.mu.Unlock()

	p.totalSubmitted.Add(1)
	p.queuedWorkItems.Add(1)
	p.cond.Signal()
	return true
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for p.head == nil && !p.cfg.ShouldStop.Load() {
			p.cond.Wait()
		}
		if p.cfg.ShouldStop.Load() {
			// Jobs still queued at this point are drained (not run) by
			// Destroy once every worker has exited; a job already
			// popped by a prior iteration still runs to completion.
			p.mu.Unlock()
			return
		}
		n := p.head
		p.head = n.next
		if p.head == nil {
			p.tail = nil
		}
		p.mu.Unlock()

		p.queuedWorkItems.Add(-1)
		p.activeWorkItems.Add(1)

		n.job()

		p.completedWorkItems.Add(1)
		active := p.activeWorkItems.Add(-1)

		p.mu.Lock()
		if p.shutdownRequested && active == 0 && p.queuedWorkItems.Load() == 0 {
			p.cond.Broadcast()
		}
		p.mu.Unlock()
	}
}

// Wait marks completion as requested and polls until quiescence
// (active == 0 && queued == 0) or timeout elapses. timeout <= 0 means
// wait indefinitely. It returns true on quiescence, false on timeout or
// on the progress callback requesting cancellation.
func (p *Pool) Wait(timeout time.Duration) bool {
	p.mu.Lock()
	p.shutdownRequested = true
	already := p.activeWorkItems.Load() == 0 && p.queuedWorkItems.Load() == 0
	p.mu.Unlock()
	if already {
		return true
	}

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		active := p.activeWorkItems.Load()
		queued := p.queuedWorkItems.Load()
		if active == 0 && queued == 0 {
			return true
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return false
		}

		if p.cfg.Progress != nil {
			completed := p.completedWorkItems.Load()
			if !p.cfg.Progress(completed, active) {
				p.cfg.ShouldStop.Store(true)
				return false
			}
		}

		slice := p.cfg.PollInterval
		if !deadline.IsZero() {
			if remaining := time.Until(deadline); remaining < slice {
				slice = remaining
			}
		}
		if slice > 0 {
			time.Sleep(slice)
		}
	}
}

// Destroy sets should_stop, wakes every waiting worker, and joins them
// with a 5 second cap. Jobs still queued when Destroy runs are dropped
// without being executed; in Go this just means the linked list becomes
// unreachable and is collected, there being no payload to explicitly
// free.
func (p *Pool) Destroy() {
	p.cfg.ShouldStop.Store(true)

	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.mu.Lock()
		p.head = nil
		p.tail = nil
		p.queuedWorkItems.Store(0)
		p.mu.Unlock()
	case <-time.After(5 * time.Second):
		// A join timeout leaks the still-running workers (and whatever
		// they still hold queued) in preference to a use-after-free of
		// shared state.
	}
}

// StatsSnapshot captures the pool's bookkeeping counters.
func (p *Pool) StatsSnapshot() Stats {
	return Stats{
		Workers:            p.cfg.MaxThreads,
		TotalSubmitted:     p.totalSubmitted.Load(),
		QueuedWorkItems:    p.queuedWorkItems.Load(),
		ActiveWorkItems:    p.activeWorkItems.Load(),
		CompletedWorkItems: p.completedWorkItems.Load(),
	}
}
