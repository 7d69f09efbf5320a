package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arnegard/fq/internal/criteria"
	"github.com/arnegard/fq/internal/export"
	"github.com/arnegard/fq/internal/search"
	"github.com/arnegard/fq/internal/sink"
	"github.com/arnegard/fq/internal/tui"
)

var (
	tuiGlob       bool
	tuiRegex      bool
	tuiHidden     bool
	tuiDepth      int
	tuiExportPath string
)

var tuiCmd = &cobra.Command{
	Use:   "browse <root> [pattern]",
	Short: "Run a live, streaming results browser over a search",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTUI,
}

func init() {
	f := tuiCmd.Flags()
	f.BoolVarP(&tuiGlob, "glob", "g", false, "Treat pattern as a glob")
	f.BoolVarP(&tuiRegex, "regex", "e", false, "Treat pattern as a regular expression")
	f.BoolVarP(&tuiHidden, "hidden", "H", false, "Include hidden files and directories")
	f.IntVar(&tuiDepth, "depth", -1, "Maximum recursion depth (0 = root only, unset = unlimited)")
	f.StringVar(&tuiExportPath, "export-db", "", "Additionally stream results into a fresh SQLite file (use \"auto\" for a generated name)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	root = filepath.Clean(root)

	pattern := ""
	if len(args) == 2 {
		pattern = args[1]
	}

	c := criteria.DefaultCriteria(root).
		WithPattern(pattern).
		WithGlob(tuiGlob).
		WithRegex(tuiRegex).
		WithHidden(tuiHidden)
	if tuiDepth >= 0 {
		c.WithMaxDepth(tuiDepth)
	}
	if err := criteria.Validate(c); err != nil {
		return err
	}

	var writer *export.Writer
	if tuiExportPath != "" {
		path := tuiExportPath
		if path == "auto" {
			path = fmt.Sprintf("fq-%s.sqlite", uuid.NewString())
		}
		writer, err = export.Open(path)
		if err != nil {
			return err
		}
		defer writer.Close()
	}

	model := tui.NewModel(root, pattern)
	program := tea.NewProgram(model)

	stream := func(r sink.Result) bool {
		if writer != nil {
			writer.Stream(r)
		}
		program.Send(tui.ResultMsg(r))
		return true
	}

	go func() {
		result := search.Search(c, search.Options{Stream: stream})
		var searchErr error
		if result.Code == search.SetupFailure {
			searchErr = fmt.Errorf("invalid search criteria")
		}
		program.Send(tui.SearchDoneMsg(searchErr))
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
