// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/output"
)

// chromeLines counts the lines drawn around the rows: title, header, status
// and help.
const chromeLines = 4

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#623CE4"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = headerStyle.Reverse(true)
	excludedStyle = lipgloss.NewStyle().Faint(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	mismatchStyle = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	popoverStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m *Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteByte('\n')
	}

	rows := m.rows()
	widths := m.widths(rows)
	b.WriteString(m.headerView(widths))
	b.WriteByte('\n')

	for _, r := range m.page(rows) {
		b.WriteString(rowView(r, widths))
		b.WriteByte('\n')
	}

	if m.open != nil {
		b.WriteString(m.popoverView())
		b.WriteByte('\n')
	}

	status := output.Summary(m.ctrl.Stats())
	if m.hide {
		status += " (mismatches hidden)"
	}
	if m.status != "" {
		status += " | " + m.status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')

	if m.open != nil {
		b.WriteString(m.help.ShortHelpView(m.keys.popoverHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// widths sizes each column to its widest header or visible cell. The extra
// column holds the active filter mark.
func (m *Model) widths(rows []*grid.Row) []int {
	names := m.table.Names()
	w := make([]int, len(names))
	for i, n := range names {
		w[i] = lipgloss.Width(n) + 1
	}
	for _, r := range rows {
		for i, v := range r.Values(len(names)) {
			w[i] = max(w[i], lipgloss.Width(v))
		}
	}
	return w
}

func (m *Model) headerView(widths []int) string {
	cells := make([]string, len(widths))
	for i, name := range m.table.Names() {
		text := name
		if p, ok := m.popovers[i]; ok && p.active {
			text += "*"
		}
		text = pad(text, widths[i])

		switch {
		case i == m.selected:
			cells[i] = selectedStyle.Render(text)
		case !m.ctrl.IsColumnIncluded(i):
			cells[i] = excludedStyle.Render(text)
		case m.popovers[i] != nil && m.popovers[i].active:
			cells[i] = activeStyle.Render(text)
		default:
			cells[i] = headerStyle.Render(text)
		}
	}
	return strings.Join(cells, "  ")
}

func rowView(r *grid.Row, widths []int) string {
	vals := r.Values(len(widths))
	for i, v := range vals {
		vals[i] = pad(v, widths[i])
	}
	line := strings.Join(vals, "  ")
	if r.Mark() == grid.Mismatched {
		return mismatchStyle.Render(line)
	}
	return line
}

// page returns the rows that fit below the offset.
func (m *Model) page(rows []*grid.Row) []*grid.Row {
	start := min(m.offset, len(rows))
	rows = rows[start:]

	room := m.height - chromeLines
	if m.open != nil {
		room -= lipgloss.Height(m.popoverView())
	}
	if m.height > 0 && room >= 0 && len(rows) > room {
		rows = rows[:room]
	}
	return rows
}

func (m *Model) popoverView() string {
	p := m.open
	lines := []string{headerStyle.Render(p.spec.Title), p.input.View()}
	for _, s := range p.matches() {
		lines = append(lines, "  "+s)
	}
	return popoverStyle.Render(strings.Join(lines, "\n"))
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
