package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	var header strings.Builder
	for _, c := range columns {
		header.WriteString(padRight(c.Title, c.Width))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.TrimRight(header.String(), " ")) + "\n")
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			width := 0
			if i < len(columns) {
				width = columns[i].Width
			}
			line.WriteString(padRight(cell, width))
		}
		b.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}
	return b.String()
}

// GroupRow is one row of the stats table.
type GroupRow struct {
	Name       string
	Policy     string
	Fragments  int
	Selections int
}

// StatsSummary holds the totals shown under the stats table.
type StatsSummary struct {
	Candidates int
	Accepted   int
	Requires   int // rejected for a missing requirement
	Excludes   int // rejected for an excluded predecessor
	Collisions []string
}

// RenderStats renders the per-group table and the run totals.
func RenderStats(groups []GroupRow, sum StatsSummary) string {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.Name, g.Policy, fmt.Sprint(g.Fragments), fmt.Sprint(g.Selections)}
	}

	var b strings.Builder
	b.WriteString(RenderSimpleTable([]TableColumn{
		{Title: "GROUP", Width: 14},
		{Title: "POLICY", Width: 24},
		{Title: "FRAGMENTS", Width: 11},
		{Title: "SELECTIONS", Width: 10},
	}, rows))
	b.WriteString("\n")

	label := lipgloss.NewStyle().Foreground(ColorMuted)
	success := lipgloss.NewStyle().Foreground(ColorSuccess)
	warn := lipgloss.NewStyle().Foreground(ColorWarning)

	line := func(name, value string) {
		b.WriteString(padRight(label.Render(name), 14) + value + "\n")
	}
	line("candidates", fmt.Sprint(sum.Candidates))
	line("accepted", success.Render(fmt.Sprintf("%s %d", SymbolSuccess, sum.Accepted)))
	line("rejected", fmt.Sprintf("%d (requires %d, excludes %d)", sum.Requires+sum.Excludes, sum.Requires, sum.Excludes))

	if len(sum.Collisions) == 0 {
		line("collisions", "0")
	} else {
		line("collisions", warn.Render(fmt.Sprintf("%s %s", SymbolWarning, strings.Join(sum.Collisions, ", "))))
	}
	return b.String()
}

// ExplainEntry is one expansion an alias name maps to.
type ExplainEntry struct {
	Name       string
	Expansions []string
}

// RenderExplain renders what each alias name expands to. A name with more
// than one expansion is a collision; the shell keeps the last definition.
func RenderExplain(entries []ExplainEntry) string {
	nameStyle := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	errStyle := lipgloss.NewStyle().Foreground(ColorError)
	warn := lipgloss.NewStyle().Foreground(ColorWarning)

	var b strings.Builder
	for _, e := range entries {
		switch len(e.Expansions) {
		case 0:
			b.WriteString(errStyle.Render(SymbolFail) + " " + nameStyle.Render(e.Name) + muted.Render("  not generated") + "\n")
		case 1:
			b.WriteString(lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess) + " " +
				nameStyle.Render(e.Name) + "  " + e.Expansions[0] + "\n")
		default:
			b.WriteString(warn.Render(SymbolWarning) + " " + nameStyle.Render(e.Name) +
				muted.Render(fmt.Sprintf("  %d definitions, the last one wins", len(e.Expansions))) + "\n")
			for _, x := range e.Expansions {
				b.WriteString("    " + x + "\n")
			}
		}
	}
	return b.String()
}

// padRight pads s to width visible characters.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
