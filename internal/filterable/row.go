// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import (
	"fmt"
)

// Row holds one Cell per filterable column and aggregates their flags. Slots
// for excluded columns are nil.
type Row struct {
	node    RowNode
	cells   []*Cell
	matcher *matcher
}

func newRow(node RowNode, width int, p policy, m *matcher) *Row {
	r := &Row{
		node:    node,
		cells:   make([]*Cell, width),
		matcher: m,
	}
	for col := 0; col < width; col++ {
		if !p.included(col) {
			continue
		}
		var cn CellNode = blankCell{}
		if col < node.Len() {
			cn = node.Cell(col)
		}
		r.cells[col] = newCell(cn)
	}
	return r
}

// Node returns the row element.
func (r *Row) Node() RowNode {
	return r.node
}

// CellAt returns the cell for col, or nil when the column is excluded or out
// of range.
func (r *Row) CellAt(col int) *Cell {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

// IsColumnIncluded reports whether col has a filterable cell in this row.
func (r *Row) IsColumnIncluded(col int) bool {
	return r.CellAt(col) != nil
}

// Text returns the current text of any column, filterable or not.
func (r *Row) Text(col int) string {
	if col < 0 || col >= r.node.Len() {
		return ""
	}
	return r.node.Cell(col).Text()
}

// FilterColumn matches the cell at col against q and re-marks the row. It
// panics if col is excluded: callers must only route filterable columns here.
func (r *Row) FilterColumn(q string, col int) {
	c := r.CellAt(col)
	if c == nil {
		panic(fmt.Sprintf("filterable: column %d is excluded from filtering", col))
	}
	c.ApplyMatch(r.matcher.predicate(q))
	r.node.SetMatch(!r.HasMismatch())
}

// HasMismatch reports whether any filterable cell explicitly mismatches. Cells
// that were never filtered do not count, so a fresh row matches.
func (r *Row) HasMismatch() bool {
	for _, c := range r.cells {
		if c != nil && c.match == MatchFalse {
			return true
		}
	}
	return false
}

func (r *Row) teardown() {
	for _, c := range r.cells {
		if c != nil {
			c.teardown()
		}
	}
	r.node.ClearMatch()
}
