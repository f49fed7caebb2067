// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package hashstate

import "github.com/tfctl/colfilter/internal/filterable"

type stubCell struct{ text string }

func (c stubCell) Text() string  { return c.text }
func (c stubCell) SetMatch(bool) {}
func (c stubCell) ClearMatch()   {}

type stubRow struct{ cells []string }

func (r *stubRow) Len() int                         { return len(r.cells) }
func (r *stubRow) Cell(col int) filterable.CellNode { return stubCell{r.cells[col]} }
func (r *stubRow) SetMatch(bool)                    {}
func (r *stubRow) ClearMatch()                      {}

type stubHeader string

func (h stubHeader) Text() string  { return string(h) }
func (h stubHeader) Title() string { return "" }
func (h stubHeader) Ignore() bool  { return false }
func (h stubHeader) Filter() bool  { return false }

type stubTable struct {
	rows  [][]string
	nodes []filterable.RowNode
}

func (t *stubTable) ID() string { return "stub" }
func (t *stubTable) Header() []filterable.HeaderNode {
	return []filterable.HeaderNode{stubHeader("name")}
}
func (t *stubTable) Rows() []filterable.RowNode {
	if t.nodes == nil {
		for _, r := range t.rows {
			t.nodes = append(t.nodes, &stubRow{cells: r})
		}
	}
	return t.nodes
}
func (t *stubTable) SetFilterable(bool) {}
