// Package fsentry is the per-entry filesystem abstraction the core
// consumes: opening a directory, reading its entries, and reporting
// stat metadata, independent of the traversal logic itself.
package fsentry

import (
	"os"
	"time"
)

// Entry is the ephemeral, per-iteration view of one directory child the
// core tests against its predicates. It lives only for one worker
// iteration.
type Entry struct {
	Name       string
	Size       int64
	ModTime    time.Time
	IsDir      bool
	IsSymlink  bool
	StatFailed bool
}

// ReadDir opens dirPath and returns its entries (excluding "." and
// "..", which os.ReadDir already elides), stat'd with Lstat so symlinks
// are reported as symlinks rather than followed. A failure to open the
// directory is reported via the error return; the caller treats this as
// non-fatal and skips the directory.
func ReadDir(dirPath string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, statEntry(dirPath, de))
	}
	return entries, nil
}

func statEntry(dirPath string, de os.DirEntry) Entry {
	name := de.Name()

	info, err := de.Info()
	if err != nil {
		return Entry{Name: name, StatFailed: true}
	}

	isSymlink := info.Mode()&os.ModeSymlink != 0
	isDir := info.IsDir()

	// A symlink to a directory reports IsDir() == false from Lstat-based
	// info; resolve it explicitly so callers can apply the
	// follow_symlinks rule to symlinked directories.
	if isSymlink {
		if target, statErr := os.Stat(dirPath + string(os.PathSeparator) + name); statErr == nil {
			isDir = target.IsDir()
		}
	}

	return Entry{
		Name:      name,
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		IsDir:     isDir,
		IsSymlink: isSymlink,
	}
}
