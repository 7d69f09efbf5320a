// Package match implements the filter predicates: pure functions from
// an entry's metadata and name to boolean, evaluated in cheap-first
// order for early exit (size, mtime, extension, file-type class, then
// name pattern).
package match

import (
	"strings"
	"time"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/filetype"
	"github.com/arnegard/fq/internal/fsentry"
	"github.com/arnegard/fq/internal/pattern"
)

// File reports whether entry (a non-directory) matches every
// configured file predicate.
func File(entry fsentry.Entry, c *criteria.Criteria) bool {
	if !sizeMatches(entry.Size, c) {
		return false
	}
	if !mtimeMatches(entry.ModTime, c) {
		return false
	}
	if !extensionMatches(entry.Name, c) {
		return false
	}
	if !fileTypeMatches(entry.Name, c) {
		return false
	}
	return pattern.Matches(entry.Name, c.Pattern, c.CaseSensitive, c.UseGlob, c.UseRegex)
}

// Dir reports whether entry (a directory) matches every configured
// directory predicate. Size, extension, and file-type do not apply to
// directories.
func Dir(entry fsentry.Entry, c *criteria.Criteria) bool {
	if !mtimeMatches(entry.ModTime, c) {
		return false
	}
	return pattern.Matches(entry.Name, c.Pattern, c.CaseSensitive, c.UseGlob, c.UseRegex)
}

func sizeMatches(size int64, c *criteria.Criteria) bool {
	if c.HasExactSize {
		return size == c.ExactSize
	}
	if c.HasMinSize && size < c.MinSize {
		return false
	}
	if c.HasMaxSize && size > c.MaxSize {
		return false
	}
	return true
}

func mtimeMatches(mtime time.Time, c *criteria.Criteria) bool {
	if c.HasAfter && mtime.Before(c.After) {
		return false
	}
	if c.HasBefore && mtime.After(c.Before) {
		return false
	}
	return true
}

func extensionMatches(name string, c *criteria.Criteria) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return false
	}
	ext := strings.ToLower(name[dot+1:])
	_, ok := c.Extensions[ext]
	return ok
}

func fileTypeMatches(name string, c *criteria.Criteria) bool {
	if c.FileType == criteria.TypeNone {
		return true
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return false
	}
	ext := strings.ToLower(name[dot+1:])
	class, ok := filetype.ClassOf(ext)
	if !ok {
		return false
	}
	return class == c.FileType
}
