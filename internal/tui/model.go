// Package tui is a live, streaming results browser for fq searches,
// built on bubbletea and lipgloss and wired to a search's streaming
// callback instead of a persisted index.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arnegard/fq/internal/sink"
)

// SortColumn is the current in-memory sort applied to the result list.
type SortColumn int

const (
	SortByCompletion SortColumn = iota
	SortByName
	SortBySize
)

func (s SortColumn) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortBySize:
		return "size"
	default:
		return "order"
	}
}

// Model holds the TUI state. Results arrive incrementally via
// resultMsg as the search's workers find them.
type Model struct {
	root    string
	pattern string

	all      []sink.Result
	filtered []sink.Result
	cursor   int
	sort     SortColumn

	filter       string
	filterActive bool

	started time.Time
	done    bool
	doneErr error

	width, height int
}

// NewModel creates a model for a search over root with the given
// display pattern (for the title bar only; matching itself already
// happened by the time results arrive).
func NewModel(root, pattern string) *Model {
	return &Model{root: root, pattern: pattern, started: time.Now()}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// resultMsg delivers one freshly-matched result to the TUI.
type resultMsg sink.Result

// ResultMsg wraps a result as a tea.Msg for a caller driving the
// program from outside the package (e.g. the CLI's search goroutine).
func ResultMsg(r sink.Result) tea.Msg { return resultMsg(r) }

// searchDoneMsg signals that the coordinator has returned.
type searchDoneMsg struct{ err error }

// SearchDoneMsg wraps a search's terminal error (nil on success) as a
// tea.Msg.
func SearchDoneMsg(err error) tea.Msg { return searchDoneMsg{err: err} }

func (m *Model) appendResult(r sink.Result) {
	m.all = append(m.all, r)
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.filtered = append([]sink.Result(nil), m.all...)
	} else {
		needle := strings.ToLower(m.filter)
		out := make([]sink.Result, 0, len(m.all))
		for _, r := range m.all {
			if strings.Contains(strings.ToLower(r.Path), needle) {
				out = append(out, r)
			}
		}
		m.filtered = out
	}
	m.applySort()
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) applySort() {
	switch m.sort {
	case SortByName:
		sortResults(m.filtered, func(a, b sink.Result) bool { return a.Path < b.Path })
	case SortBySize:
		sortResults(m.filtered, func(a, b sink.Result) bool { return a.Size > b.Size })
	}
}

// sortResults is a small insertion sort: result lists shown in the TUI
// stay small enough (interactive browsing, not bulk export) that this
// beats pulling sort.Slice's reflection overhead for the common case,
// and it keeps ties in arrival order, which sort.Slice doesn't
// guarantee.
func sortResults(rs []sink.Result, less func(a, b sink.Result) bool) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && less(rs[j], rs[j-1]); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	return "↑/↓ move | n: sort by name | s: sort by size | o: sort by order | /: filter | q: quit"
}
