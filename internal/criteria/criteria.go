// Package criteria defines the search parameters shared by reference among
// all workers during a single search, and validates them before the
// coordinator starts.
package criteria

import (
	"errors"
	"math"
	"time"
)

// FileType is a coarse file-type class used by the --type filter.
type FileType string

const (
	TypeNone    FileType = ""
	TypeText    FileType = "text"
	TypeImage   FileType = "image"
	TypeVideo   FileType = "video"
	TypeAudio   FileType = "audio"
	TypeArchive FileType = "archive"
)

// NoDepthLimit represents an unbounded max depth.
const NoDepthLimit = math.MaxInt32

// Criteria is immutable after construction and shared by reference among
// every worker in a search. Nothing in this package mutates a Criteria
// once Validate has accepted it.
type Criteria struct {
	RootPath string
	Pattern  string

	CaseSensitive bool
	UseGlob       bool
	UseRegex      bool

	IncludeFiles       bool
	IncludeDirectories bool
	IncludeHidden      bool
	FollowSymlinks     bool
	SkipCommonDirs     bool

	HasMinSize   bool
	MinSize      int64
	HasMaxSize   bool
	MaxSize      int64
	HasExactSize bool
	ExactSize    int64

	HasAfter  bool
	After     time.Time
	HasBefore bool
	Before    time.Time

	// Extensions holds lowercase extensions without a leading dot.
	// Empty means any extension matches.
	Extensions map[string]struct{}

	FileType FileType

	// MaxDepth: 0 means root only, no recursion. NoDepthLimit means
	// unlimited.
	MaxDepth int

	// MaxResults: 0 means unlimited.
	MaxResults int

	// MaxThreads: 0 means auto (hardware concurrency, minimum 4).
	MaxThreads int

	// Timeout: 0 means no timeout.
	Timeout time.Duration
}

// DefaultCriteria returns a Criteria with sensible defaults: match both
// files and directories, skip common noise directories, don't descend
// into symlinked directories, and run unbounded.
func DefaultCriteria(root string) *Criteria {
	return &Criteria{
		RootPath:           root,
		IncludeFiles:       true,
		IncludeDirectories: true,
		FollowSymlinks:     false,
		SkipCommonDirs:     true,
		MaxDepth:           NoDepthLimit,
		Extensions:         map[string]struct{}{},
	}
}

// WithPattern sets the name-matching pattern.
func (c *Criteria) WithPattern(pattern string) *Criteria {
	c.Pattern = pattern
	return c
}

// WithGlob enables glob matching for the pattern.
func (c *Criteria) WithGlob(v bool) *Criteria {
	c.UseGlob = v
	return c
}

// WithRegex enables regex matching for the pattern. Regex wins if both
// glob and regex are set.
func (c *Criteria) WithRegex(v bool) *Criteria {
	c.UseRegex = v
	return c
}

// WithCaseSensitive toggles case sensitivity for name matching.
func (c *Criteria) WithCaseSensitive(v bool) *Criteria {
	c.CaseSensitive = v
	return c
}

// WithHidden toggles whether dotfiles/dotdirs are considered.
func (c *Criteria) WithHidden(v bool) *Criteria {
	c.IncludeHidden = v
	return c
}

// WithFollowSymlinks toggles descending into symlinked directories.
func (c *Criteria) WithFollowSymlinks(v bool) *Criteria {
	c.FollowSymlinks = v
	return c
}

// WithSkipCommonDirs toggles the builtin skip list (see internal/skip).
func (c *Criteria) WithSkipCommonDirs(v bool) *Criteria {
	c.SkipCommonDirs = v
	return c
}

// WithFilesOnly restricts matches to regular files.
func (c *Criteria) WithFilesOnly() *Criteria {
	c.IncludeFiles = true
	c.IncludeDirectories = false
	return c
}

// WithDirsOnly restricts matches to directories.
func (c *Criteria) WithDirsOnly() *Criteria {
	c.IncludeFiles = false
	c.IncludeDirectories = true
	return c
}

// WithMaxDepth sets the recursion depth cap. 0 means root only.
func (c *Criteria) WithMaxDepth(d int) *Criteria {
	c.MaxDepth = d
	return c
}

// WithMaxResults sets the result cap. 0 means unlimited.
func (c *Criteria) WithMaxResults(n int) *Criteria {
	c.MaxResults = n
	return c
}

// WithMaxThreads sets the worker count. 0 means auto.
func (c *Criteria) WithMaxThreads(n int) *Criteria {
	c.MaxThreads = n
	return c
}

// WithTimeout sets the wall-clock timeout. 0 means no timeout.
func (c *Criteria) WithTimeout(d time.Duration) *Criteria {
	c.Timeout = d
	return c
}

// WithMinSize sets the minimum size constraint.
func (c *Criteria) WithMinSize(n int64) *Criteria {
	c.HasMinSize = true
	c.MinSize = n
	return c
}

// WithMaxSize sets the maximum size constraint.
func (c *Criteria) WithMaxSize(n int64) *Criteria {
	c.HasMaxSize = true
	c.MaxSize = n
	return c
}

// WithExactSize sets an exact-size constraint. If set, it takes
// precedence over min/max (see internal/match).
func (c *Criteria) WithExactSize(n int64) *Criteria {
	c.HasExactSize = true
	c.ExactSize = n
	return c
}

// WithAfter sets the inclusive lower mtime bound.
func (c *Criteria) WithAfter(t time.Time) *Criteria {
	c.HasAfter = true
	c.After = t
	return c
}

// WithBefore sets the inclusive upper mtime bound.
func (c *Criteria) WithBefore(t time.Time) *Criteria {
	c.HasBefore = true
	c.Before = t
	return c
}

// WithExtensions sets the allowed extension set (lowercase, no leading dot).
func (c *Criteria) WithExtensions(exts []string) *Criteria {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[e] = struct{}{}
	}
	c.Extensions = set
	return c
}

// WithFileType sets the coarse file-type filter.
func (c *Criteria) WithFileType(t FileType) *Criteria {
	c.FileType = t
	return c
}

// Validate checks the invariants a Criteria must satisfy before a search
// can start.
func Validate(c *Criteria) error {
	if c == nil {
		return errors.New("criteria: nil")
	}
	if c.RootPath == "" {
		return errors.New("criteria: root_path is required")
	}
	if !c.IncludeFiles && !c.IncludeDirectories {
		return errors.New("criteria: at least one of include_files, include_directories must be true")
	}
	if c.MaxDepth < 0 {
		return errors.New("criteria: max_depth must be non-negative")
	}
	if c.MaxResults < 0 {
		return errors.New("criteria: max_results must be non-negative")
	}
	if c.MaxThreads < 0 {
		return errors.New("criteria: max_threads must be non-negative")
	}
	if c.HasMinSize && c.MinSize < 0 {
		return errors.New("criteria: min_size must be non-negative")
	}
	if c.HasMaxSize && c.MaxSize < 0 {
		return errors.New("criteria: max_size must be non-negative")
	}
	if c.HasExactSize && c.ExactSize < 0 {
		return errors.New("criteria: exact_size must be non-negative")
	}
	if c.HasMinSize && c.HasMaxSize && c.MinSize > c.MaxSize {
		return errors.New("criteria: min_size must be <= max_size")
	}
	if c.HasAfter && c.HasBefore && c.After.After(c.Before) {
		return errors.New("criteria: after must be <= before")
	}
	return nil
}

// EffectiveThreads resolves max_threads against hardware concurrency,
// honouring the "auto, minimum 4" rule.
func EffectiveThreads(c *Criteria, hardwareConcurrency int) int {
	if c.MaxThreads > 0 {
		return c.MaxThreads
	}
	if hardwareConcurrency < 4 {
		return 4
	}
	return hardwareConcurrency
}
