// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package grid is the in-memory table the filter controller drives. Each
// element records the mark last projected onto it, which the renderers read.
package grid

import (
	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/source"
)

// Mark is the visual state of a row or cell.
type Mark int

const (
	Unmarked Mark = iota
	Matched
	Mismatched
)

func (m Mark) String() string {
	switch m {
	case Matched:
		return "match"
	case Mismatched:
		return "mismatch"
	default:
		return ""
	}
}

type marker struct {
	mark Mark
}

// SetMatch and ClearMatch implement filterable.Marker.

func (m *marker) SetMatch(match bool) {
	if match {
		m.mark = Matched
	} else {
		m.mark = Mismatched
	}
}

func (m *marker) ClearMatch() { m.mark = Unmarked }

// Mark returns the current mark.
func (m *marker) Mark() Mark { return m.mark }

// Cell is one table cell.
type Cell struct {
	marker
	text string
}

// Text returns the cell content.
func (c *Cell) Text() string { return c.text }

// SetText replaces the content. The next filter sees the new text.
func (c *Cell) SetText(text string) { c.text = text }

// Row is one data row.
type Row struct {
	marker
	index int
	cells []*Cell
}

// Index is the row's position in the source.
func (r *Row) Index() int { return r.index }

// Len returns the number of cells, which may be less than the header width.
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the node of col.
func (r *Row) Cell(col int) filterable.CellNode { return r.cells[col] }

// At returns the grid cell of col, nil when the row is short.
func (r *Row) At(col int) *Cell {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

// Values returns the text of every header column, padding short rows.
func (r *Row) Values(width int) []string {
	out := make([]string, width)
	for i := range out {
		if c := r.At(i); c != nil {
			out[i] = c.text
		}
	}
	return out
}

// Header is one header cell.
type Header struct {
	columns.Column
}

// Text, Title, Ignore and Filter implement filterable.HeaderNode.

func (h Header) Text() string  { return h.Name }
func (h Header) Title() string { return h.Column.Title }
func (h Header) Ignore() bool  { return h.Column.Ignore }
func (h Header) Filter() bool  { return h.Column.Filter }

// Table is a filterable grid.
type Table struct {
	id         string
	header     []Header
	rows       []*Row
	filterable bool
}

// New builds a table from loaded data.
func New(data *source.Data) *Table {
	t := &Table{id: data.ID}
	for _, c := range data.Columns {
		t.header = append(t.header, Header{Column: c})
	}
	for i, rec := range data.Records {
		r := &Row{index: i, cells: make([]*Cell, len(rec))}
		for j, text := range rec {
			r.cells[j] = &Cell{text: text}
		}
		t.rows = append(t.rows, r)
	}
	return t
}

// ID returns the table id that filter keys are derived from.
func (t *Table) ID() string { return t.id }

// Header returns the header cells as filterable.HeaderNode values.
func (t *Table) Header() []filterable.HeaderNode {
	out := make([]filterable.HeaderNode, len(t.header))
	for i, h := range t.header {
		out[i] = h
	}
	return out
}

// Rows returns the data rows in source order.
func (t *Table) Rows() []filterable.RowNode {
	out := make([]filterable.RowNode, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

// SetFilterable records whether a controller is attached.
func (t *Table) SetFilterable(on bool) { t.filterable = on }

// Filterable reports whether a controller is attached.
func (t *Table) Filterable() bool { return t.filterable }

// Width returns the column count.
func (t *Table) Width() int { return len(t.header) }

// Names returns the header text of every column.
func (t *Table) Names() []string {
	out := make([]string, len(t.header))
	for i, h := range t.header {
		out[i] = h.Name
	}
	return out
}

// Columns returns the column definitions.
func (t *Table) Columns() columns.List {
	out := make(columns.List, len(t.header))
	for i, h := range t.header {
		out[i] = h.Column
	}
	return out
}

// GridRows returns the rows in source order.
func (t *Table) GridRows() []*Row { return t.rows }

// Visible selects rows by mark for display.
type Visible int

const (
	// ShowAll keeps every row.
	ShowAll Visible = iota
	// HideMismatched drops rows marked as mismatching.
	HideMismatched
	// OnlyMismatched keeps only rows marked as mismatching.
	OnlyMismatched
)

// ParseVisible reads a --mismatch value: show, hide or only.
func ParseVisible(s string) (Visible, bool) {
	switch s {
	case "", "show":
		return ShowAll, true
	case "hide":
		return HideMismatched, true
	case "only":
		return OnlyMismatched, true
	default:
		return ShowAll, false
	}
}

// Select returns the rows v keeps.
func (t *Table) Select(v Visible) []*Row {
	if v == ShowAll {
		return t.rows
	}
	var out []*Row
	for _, r := range t.rows {
		if (r.mark == Mismatched) == (v == OnlyMismatched) {
			out = append(out, r)
		}
	}
	return out
}
