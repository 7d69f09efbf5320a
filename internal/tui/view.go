package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/arnegard/fq/internal/sink"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("fq - live search"))
	writeLine(pathStyle.Render(fmt.Sprintf("Root: %s", truncateMiddle(m.root, max(10, m.width-6)))))

	status := fmt.Sprintf("Found: %s | Sort: %s | Elapsed: %s",
		FormatCount(int64(len(m.filtered))), m.sort, elapsedSince(m.started))
	if m.done {
		if m.doneErr != nil {
			status += fmt.Sprintf(" | done (error: %v)", m.doneErr)
		} else {
			status += " | done"
		}
	}
	writeLine(statusStyle.Render(status))

	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	sizeLabel := headerLabel("SIZE", m.sort == SortBySize)
	nameLabel := headerLabel("PATH", m.sort == SortByName)

	footerLines := 2
	visibleRows := m.height - headerLines - footerLines
	if visibleRows < 5 {
		visibleRows = 5
	}

	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.filtered), startIdx+visibleRows)

	nameWidth := m.width - 10 - 4
	if nameWidth < 10 {
		nameWidth = 10
	}

	header := fmt.Sprintf("%10s  %s", sizeLabel, nameLabel)
	writeLine(headerStyle.Render(header))

	for i := startIdx; i < endIdx; i++ {
		r := m.filtered[i]
		line := m.formatResult(r, i == m.cursor, nameWidth)
		b.WriteString(line)
		b.WriteString("\n")
	}

	displayed := min(len(m.filtered)-startIdx, visibleRows)
	for i := displayed; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.helpLine()
	if len(m.filtered) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.filtered))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) formatResult(r sink.Result, selected bool, nameWidth int) string {
	size := FormatSize(r.Size)

	rawName := r.Path
	if r.IsDir {
		rawName += "/"
	}
	rawName = truncateRight(rawName, nameWidth)

	var styledName string
	if r.IsDir {
		styledName = dirStyle.Render(rawName)
	} else {
		styledName = fileStyle.Render(rawName)
	}

	pad := nameWidth - len(rawName)
	if pad < 0 {
		pad = 0
	}
	paddedName := styledName + strings.Repeat(" ", pad)

	line := fmt.Sprintf("%10s  %s", sizeStyle.Render(size), paddedName)
	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func elapsedSince(t time.Time) string {
	return time.Since(t).Round(time.Second).String()
}

func headerLabel(label string, active bool) string {
	if active {
		return label + " v"
	}
	return label
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
