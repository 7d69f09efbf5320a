package fsentry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestReadDirReportsFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	if byName["a.txt"].IsDir {
		t.Error("a.txt should not be reported as a directory")
	}
	if byName["a.txt"].Size != 5 {
		t.Errorf("expected size 5, got %d", byName["a.txt"].Size)
	}
	if !byName["sub"].IsDir {
		t.Error("sub should be reported as a directory")
	}
}

func TestReadDirNonexistentReturnsError(t *testing.T) {
	if _, err := ReadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a nonexistent directory")
	}
}

func TestReadDirReportsSymlinkToDirAsDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on windows")
	}

	root := t.TempDir()
	target := filepath.Join(root, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	entries, err := ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var found bool
	for _, e := range entries {
		if e.Name == "link" {
			found = true
			if !e.IsSymlink {
				t.Error("expected link to be reported as a symlink")
			}
			if !e.IsDir {
				t.Error("expected a symlink to a directory to resolve IsDir to true")
			}
		}
	}
	if !found {
		t.Fatal("link entry not found")
	}
}
