package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/export"
	"github.com/arnegard/fq/internal/search"
	"github.com/arnegard/fq/internal/sink"
	"github.com/arnegard/fq/internal/state"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var searchCmd = &cobra.Command{
	Use:     "search <root> [pattern]",
	Aliases: []string{"find"},
	Short:   "Search a directory tree for matching files and folders",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runSearch,
}

var (
	searchGlob           bool
	searchRegex          bool
	searchCaseSensitive  bool
	searchHidden         bool
	searchNoFollowSyms   bool
	searchFilesOnly      bool
	searchDirsOnly       bool
	searchDepth          int
	searchMaxResults     int
	searchThreads        int
	searchTimeout        time.Duration
	searchMinSize        string
	searchMaxSize        string
	searchExactSize      string
	searchAfter          string
	searchBefore         string
	searchExt            []string
	searchType           string
	searchSkipCommonDirs bool
	searchStats          bool
	searchJSON           bool
	searchExportDB       string
	searchVerbose        bool
	searchProgress       time.Duration
)

func init() {
	f := searchCmd.Flags()
	f.BoolVarP(&searchGlob, "glob", "g", false, "Treat pattern as a glob (*, ?, [abc], {a,b})")
	f.BoolVarP(&searchRegex, "regex", "e", false, "Treat pattern as a regular expression (wins over --glob)")
	f.BoolVarP(&searchCaseSensitive, "case-sensitive", "s", false, "Case-sensitive name matching")
	f.BoolVarP(&searchHidden, "hidden", "H", false, "Include hidden files and directories")
	f.BoolVar(&searchNoFollowSyms, "no-follow-symlinks", true, "Don't descend into symlinked directories")
	f.BoolVarP(&searchFilesOnly, "files-only", "f", false, "Match files only")
	f.BoolVarP(&searchDirsOnly, "dirs-only", "d", false, "Match directories only")
	f.IntVar(&searchDepth, "depth", -1, "Maximum recursion depth (0 = root only, unset = unlimited)")
	f.IntVarP(&searchMaxResults, "max-results", "n", 0, "Stop after N results (0 = unlimited)")
	f.IntVarP(&searchThreads, "threads", "j", 0, "Worker count (0 = auto)")
	f.DurationVar(&searchTimeout, "timeout", 0, "Wall-clock timeout (0 = none)")
	f.StringVar(&searchMinSize, "min-size", "", "Minimum size, e.g. 1MB")
	f.StringVar(&searchMaxSize, "max-size", "", "Maximum size, e.g. 100MB")
	f.StringVar(&searchExactSize, "size", "", "Exact size, e.g. 4KB")
	f.StringVar(&searchAfter, "after", "", "Only entries modified at or after this time (RFC3339 or e.g. 7d, 2h)")
	f.StringVar(&searchBefore, "before", "", "Only entries modified at or before this time (RFC3339 or e.g. 7d, 2h)")
	f.StringSliceVar(&searchExt, "ext", nil, "Restrict to these extensions (repeatable, no leading dot)")
	f.StringVar(&searchType, "type", "", "Restrict to a file-type class: text|image|video|audio|archive")
	f.BoolVar(&searchSkipCommonDirs, "skip-common-dirs", true, "Skip common noise directories (node_modules, .git, ...)")
	f.BoolVar(&searchStats, "stats", false, "Print worker pool statistics after the search")
	f.BoolVar(&searchJSON, "json", false, "Emit results as JSON lines instead of plain paths")
	f.StringVar(&searchExportDB, "export-db", "", "Additionally stream results into a fresh SQLite file at this path")
	f.BoolVarP(&searchVerbose, "verbose", "v", false, "Show a progress spinner (TTY) or periodic progress lines (non-TTY) on stderr")
	f.DurationVar(&searchProgress, "progress-interval", 2*time.Second, "With --verbose, emit progress lines to stderr at this interval when not a TTY (0 to disable)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	root = filepath.Clean(root)

	pattern := ""
	if len(args) == 2 {
		pattern = args[1]
	}

	c, err := buildCriteria(root, pattern)
	if err != nil {
		return err
	}

	var writer *export.Writer
	if searchExportDB != "" {
		path := searchExportDB
		if path == "auto" {
			path = fmt.Sprintf("fq-%s.sqlite", uuid.NewString())
		}
		writer, err = export.Open(path)
		if err != nil {
			return err
		}
		defer writer.Close()
	}

	st := state.New()
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nCanceling...")
		st.Stop()
	}()

	enc := json.NewEncoder(os.Stdout)
	stream := func(r sink.Result) bool {
		if writer != nil {
			writer.Stream(r)
		}
		emit(enc, r)
		return !st.ShouldStop()
	}

	startTime := time.Now()
	isTTY := isTerminal()
	spinnerIdx := 0
	progressDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		lastNonTTY := time.Now()
		for {
			select {
			case <-progressDone:
				return
			case <-ticker.C:
				if !searchVerbose {
					continue
				}
				if isTTY {
					spinner := spinnerFrames[spinnerIdx%len(spinnerFrames)]
					spinnerIdx++
					fmt.Fprintf(os.Stderr, "\r\033[K%s searching... %s", spinner, time.Since(startTime).Round(time.Millisecond))
				} else if searchProgress > 0 && time.Since(lastNonTTY) >= searchProgress {
					fmt.Fprintf(os.Stderr, "PROGRESS elapsed=%s\n", time.Since(startTime).Round(time.Millisecond))
					lastNonTTY = time.Now()
				}
			}
		}
	}()

	result := search.Search(c, search.Options{
		Stream: stream,
		Progress: func(processedFiles, queuedDirs, totalResults int64) bool {
			return !st.ShouldStop()
		},
	})
	close(progressDone)
	if isTTY && searchVerbose {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	switch result.Code {
	case search.SetupFailure:
		return fmt.Errorf("invalid search criteria")
	case search.TimedOut:
		fmt.Fprintln(os.Stderr, "search timed out; returning partial results")
	}

	if searchStats {
		printStats(result)
	}

	return nil
}

func buildCriteria(root, pattern string) (*criteria.Criteria, error) {
	c := criteria.DefaultCriteria(root).
		WithPattern(pattern).
		WithGlob(searchGlob).
		WithRegex(searchRegex).
		WithCaseSensitive(searchCaseSensitive).
		WithHidden(searchHidden).
		WithFollowSymlinks(!searchNoFollowSyms).
		WithSkipCommonDirs(searchSkipCommonDirs).
		WithMaxResults(searchMaxResults).
		WithMaxThreads(searchThreads).
		WithTimeout(searchTimeout).
		WithExtensions(searchExt)

	if searchFilesOnly {
		c.WithFilesOnly()
	}
	if searchDirsOnly {
		c.WithDirsOnly()
	}
	if searchDepth >= 0 {
		c.WithMaxDepth(searchDepth)
	}

	if searchType != "" {
		c.WithFileType(criteria.FileType(searchType))
	}

	if searchMinSize != "" {
		n, err := humanize.ParseBytes(searchMinSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-size %q: %w", searchMinSize, err)
		}
		c.WithMinSize(int64(n))
	}
	if searchMaxSize != "" {
		n, err := humanize.ParseBytes(searchMaxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --max-size %q: %w", searchMaxSize, err)
		}
		c.WithMaxSize(int64(n))
	}
	if searchExactSize != "" {
		n, err := humanize.ParseBytes(searchExactSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --size %q: %w", searchExactSize, err)
		}
		c.WithExactSize(int64(n))
	}

	if searchAfter != "" {
		t, err := parseTimeBound(searchAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid --after %q: %w", searchAfter, err)
		}
		c.WithAfter(t)
	}
	if searchBefore != "" {
		t, err := parseTimeBound(searchBefore)
		if err != nil {
			return nil, fmt.Errorf("invalid --before %q: %w", searchBefore, err)
		}
		c.WithBefore(t)
	}

	if err := criteria.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseTimeBound(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(-d), nil
	}
	// Support a simple "7d" shorthand humanize/time.ParseDuration don't.
	if n := len(s); n > 1 && s[n-1] == 'd' {
		if d, err := time.ParseDuration(s[:n-1] + "h"); err == nil {
			return time.Now().Add(-d * 24), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

func emit(enc *json.Encoder, r sink.Result) {
	if searchJSON {
		enc.Encode(map[string]any{
			"path":     r.Path,
			"is_dir":   r.IsDir,
			"size":     r.Size,
			"mod_time": r.ModTime.Format(time.RFC3339),
		})
		return
	}
	fmt.Println(r.Path)
}

func printStats(result search.Result) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "-----\n")
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", result.Stats.Workers)
	fmt.Fprintf(os.Stderr, "Submitted:  %s\n", humanize.Comma(result.Stats.TotalSubmitted))
	fmt.Fprintf(os.Stderr, "Completed:  %s\n", humanize.Comma(result.Stats.CompletedWorkItems))
	fmt.Fprintf(os.Stderr, "Results:    %s\n", humanize.Comma(int64(len(result.Results))))
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
