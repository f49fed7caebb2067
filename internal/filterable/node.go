// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

// Marker receives the visual projection of a match flag.
type Marker interface {
	// SetMatch marks the element as matching or mismatching. Calling it twice
	// with the same value leaves the element in the same state.
	SetMatch(match bool)
	// ClearMatch removes both marks.
	ClearMatch()
}

// CellNode is a table cell as seen by the filter.
type CellNode interface {
	Marker
	// Text returns the current cell content. It is read on every filter, so
	// it may change between calls.
	Text() string
}

// RowNode is a data row. Implementations are used as map keys and must be
// comparable, which pointer receivers are.
type RowNode interface {
	Marker
	Len() int
	Cell(col int) CellNode
}

// HeaderNode is one cell of the header row.
type HeaderNode interface {
	Text() string
	// Title is the popover title, empty to fall back to Text.
	Title() string
	// Ignore forces the column out of filtering.
	Ignore() bool
	// Filter forces the column into the allow-list.
	Filter() bool
}

// Table is the element filtering is enabled on. The first row is the header
// and defines the column count; Rows returns the data rows after it.
type Table interface {
	ID() string
	Header() []HeaderNode
	Rows() []RowNode
	// SetFilterable marks or unmarks the table as carrying filters.
	SetFilterable(on bool)
}

// blankCell pads rows that are shorter than the header.
type blankCell struct{}

func (blankCell) Text() string  { return "" }
func (blankCell) SetMatch(bool) {}
func (blankCell) ClearMatch()   {}
