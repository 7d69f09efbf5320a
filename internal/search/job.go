// Package search implements the search coordinator and the directory
// job it dispatches to the worker pool: the public entry point of the
// traversal engine.
package search

import (
	"path/filepath"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/fsentry"
	"github.com/arnegard/fq/internal/match"
	"github.com/arnegard/fq/internal/pool"
	"github.com/arnegard/fq/internal/sink"
	"github.com/arnegard/fq/internal/skip"
	"github.com/arnegard/fq/internal/state"
)

// job carries everything one directory expansion needs. It is a Go
// value, not a pointer into shared mutable memory, so "freeing" it is
// simply letting it go out of scope.
type job struct {
	path  string
	depth int
}

// runtime bundles the immutable, shared collaborators every job needs:
// criteria, the pool it can enqueue children on, the sink it reports
// matches to, and the shared state it updates. It is assembled once by
// the coordinator and passed by pointer to every job.
type runtime struct {
	criteria *criteria.Criteria
	pool     *pool.Pool
	sink     *sink.Sink
	state    *state.State
}

// execute expands the job's directory end to end.
func (j job) execute(rt *runtime) {
	defer rt.state.DoneQueuedDir()

	if rt.state.ShouldStop() {
		return
	}

	if skip.IsSystemPath(j.path) {
		return
	}

	entries, err := fsentry.ReadDir(j.path)
	if err != nil {
		// Permission denied, ENOENT, etc. are non-fatal: the directory
		// is silently skipped and the search continues.
		return
	}

	for i, entry := range entries {
		if i%64 == 0 && rt.state.ShouldStop() {
			break
		}

		if !rt.criteria.IncludeHidden && len(entry.Name) > 0 && entry.Name[0] == '.' {
			continue
		}
		if entry.StatFailed {
			continue
		}

		fullPath := filepath.Join(j.path, entry.Name)
		if len(fullPath) == 0 {
			continue
		}

		if entry.IsDir {
			j.handleDir(rt, entry, fullPath)
		} else {
			j.handleFile(rt, entry, fullPath)
		}
	}
}

func (j job) handleDir(rt *runtime, entry fsentry.Entry, fullPath string) {
	if entry.IsSymlink && !rt.criteria.FollowSymlinks {
		return
	}

	if rt.criteria.SkipCommonDirs && skip.IsCommonDir(entry.Name) {
		return
	}

	if rt.criteria.IncludeDirectories && match.Dir(entry, rt.criteria) {
		rt.sink.Submit(sink.Result{
			Path:    fullPath,
			IsDir:   true,
			ModTime: entry.ModTime,
		})
	}

	if j.depth < rt.criteria.MaxDepth {
		child := job{path: fullPath, depth: j.depth + 1}
		rt.state.AddQueuedDir()
		submitted := rt.pool.Submit(func() { child.execute(rt) })
		if !submitted {
			// The pool is shutting down, so run the job inline to
			// preserve the queued_dirs balance instead of leaking the
			// increment above.
			child.execute(rt)
		}
	}
}

func (j job) handleFile(rt *runtime, entry fsentry.Entry, fullPath string) {
	rt.state.AddProcessedFile()

	if rt.criteria.IncludeFiles && match.File(entry, rt.criteria) {
		rt.sink.Submit(sink.Result{
			Path:    fullPath,
			IsDir:   false,
			Size:    entry.Size,
			ModTime: entry.ModTime,
		})
	}
}
