package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsJobs(t *testing.T) {
	p := Create(Config{MaxThreads: 4, PollInterval: time.Millisecond})
	defer p.Destroy()

	var n atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		ok := p.Submit(func() {
			defer wg.Done()
			n.Add(1)
		})
		if !ok {
			t.Fatal("submit should not be refused before shutdown")
		}
	}
	wg.Wait()

	if n.Load() != 100 {
		t.Fatalf("expected 100 jobs to run, got %d", n.Load())
	}
}

func TestWaitReturnsTrueOnQuiescence(t *testing.T) {
	p := Create(Config{MaxThreads: 2, PollInterval: time.Millisecond})
	defer p.Destroy()

	for i := 0; i < 10; i++ {
		p.Submit(func() { time.Sleep(time.Millisecond) })
	}

	if !p.Wait(time.Second) {
		t.Fatal("expected Wait to report quiescence before the timeout")
	}

	stats := p.StatsSnapshot()
	if stats.CompletedWorkItems != 10 {
		t.Fatalf("expected 10 completed work items, got %d", stats.CompletedWorkItems)
	}
}

func TestWaitTimesOut(t *testing.T) {
	p := Create(Config{MaxThreads: 1, PollInterval: time.Millisecond})
	defer p.Destroy()

	block := make(chan struct{})
	p.Submit(func() { <-block })

	if p.Wait(20 * time.Millisecond) {
		t.Fatal("expected Wait to time out while a job is still blocking")
	}
	close(block)
}

func TestSubmitRefusedAfterShouldStop(t *testing.T) {
	var stop atomic.Bool
	p := Create(Config{MaxThreads: 1, ShouldStop: &stop, PollInterval: time.Millisecond})
	defer p.Destroy()

	stop.Store(true)
	if p.Submit(func() {}) {
		t.Fatal("expected submit to be refused once should_stop is set")
	}
}

func TestDestroyDrainsWithoutExecuting(t *testing.T) {
	var stop atomic.Bool
	p := Create(Config{MaxThreads: 1, ShouldStop: &stop, PollInterval: time.Millisecond})

	block := make(chan struct{})
	p.Submit(func() { <-block })

	var ran atomic.Bool
	p.Submit(func() { ran.Store(true) })

	stop.Store(true)
	close(block)
	p.Destroy()

	if ran.Load() {
		t.Fatal("a job still queued at Destroy time must not run")
	}

	stats := p.StatsSnapshot()
	if stats.QueuedWorkItems != 0 {
		t.Fatalf("expected queued work items to be cleared, got %d", stats.QueuedWorkItems)
	}
}
