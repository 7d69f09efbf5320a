package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/sink"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func pathSet(results []sink.Result) map[string]bool {
	set := make(map[string]bool, len(results))
	for _, r := range results {
		set[r.Path] = true
	}
	return set
}

func TestSearchFlatDirectoryNoPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "b.txt"), 10)

	c := criteria.DefaultCriteria(root)
	result := Search(c, Options{})

	if result.Code != Completed {
		t.Fatalf("expected Completed, got %v", result.Code)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}
}

func TestSearchGlobOneLevelDeep(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.go"), 10)
	writeFile(t, filepath.Join(root, "sub", "nested.go"), 10)
	writeFile(t, filepath.Join(root, "top.txt"), 10)

	c := criteria.DefaultCriteria(root).WithPattern("*.go").WithGlob(true)
	result := Search(c, Options{})

	got := pathSet(result.Results)
	if !got[filepath.Join(root, "top.go")] {
		t.Error("expected top.go to match")
	}
	if !got[filepath.Join(root, "sub", "nested.go")] {
		t.Error("expected nested.go to match via recursion")
	}
	if got[filepath.Join(root, "top.txt")] {
		t.Error("did not expect top.txt to match *.go")
	}
}

func TestSearchMaxDepthZeroIsRootOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "file.txt"), 10)

	c := criteria.DefaultCriteria(root).WithMaxDepth(0)
	result := Search(c, Options{})

	for _, r := range result.Results {
		if r.Path != filepath.Join(root, "sub") {
			t.Fatalf("unexpected result at depth 0: %s", r.Path)
		}
	}
}

func TestSearchMaxResultsClamps(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(root, "file"+string(rune('a'+i))+".txt"), 5)
	}

	c := criteria.DefaultCriteria(root).WithMaxResults(5)
	result := Search(c, Options{})

	if len(result.Results) != 5 {
		t.Fatalf("expected exactly 5 results, got %d", len(result.Results))
	}
}

func TestSearchSizeAndExtensionCombo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.go"), 5)
	writeFile(t, filepath.Join(root, "big.go"), 500)
	writeFile(t, filepath.Join(root, "big.txt"), 500)

	c := criteria.DefaultCriteria(root).WithMinSize(100).WithExtensions([]string{"go"})
	result := Search(c, Options{})

	got := pathSet(result.Results)
	if len(got) != 1 || !got[filepath.Join(root, "big.go")] {
		t.Fatalf("expected only big.go, got %v", got)
	}
}

func TestSearchCancellationViaCallback(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(root, "f"+string(rune('a'+i%26))+string(rune('0'+i/26))+".txt"), 5)
	}

	count := 0
	c := criteria.DefaultCriteria(root)
	result := Search(c, Options{
		Stream: func(r sink.Result) bool {
			count++
			return count < 3
		},
	})

	if len(result.Results) != 3 {
		t.Fatalf("expected exactly 3 results after cancellation, got %d", len(result.Results))
	}
	if result.Code != Completed {
		t.Fatalf("callback-triggered cancellation should still report Completed, got %v", result.Code)
	}
}

func TestSearchSkipsCommonDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), 5)
	writeFile(t, filepath.Join(root, "src", "main.go"), 5)

	c := criteria.DefaultCriteria(root).WithPattern("").WithSkipCommonDirs(true)
	result := Search(c, Options{})

	got := pathSet(result.Results)
	for p := range got {
		if filepath.Base(filepath.Dir(p)) == "pkg" {
			t.Fatalf("expected node_modules subtree to be skipped, found %s", p)
		}
	}
	if !got[filepath.Join(root, "src", "main.go")] {
		t.Error("expected src/main.go to be found")
	}
}

func TestSearchSetupFailureOnInvalidCriteria(t *testing.T) {
	c := criteria.DefaultCriteria("")
	result := Search(c, Options{})
	if result.Code != SetupFailure {
		t.Fatalf("expected SetupFailure for invalid criteria, got %v", result.Code)
	}
}

func TestSearchFastMatchesSearch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "only.txt"), 5)

	c := criteria.DefaultCriteria(root)
	result := SearchFast(c)
	if len(result.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.Results))
	}
}
