// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import (
	"github.com/tfctl/colfilter/internal/query"
)

// Match is the tri-state match flag of a cell.
type Match int

const (
	// MatchUnknown means the cell's column has never been filtered.
	MatchUnknown Match = iota
	MatchTrue
	MatchFalse
)

func (m Match) String() string {
	switch m {
	case MatchTrue:
		return "match"
	case MatchFalse:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Cell holds the match state of one filterable cell.
type Cell struct {
	node  CellNode
	match Match
}

func newCell(node CellNode) *Cell {
	return &Cell{node: node}
}

// Text returns the cell's current text.
func (c *Cell) Text() string {
	return c.node.Text()
}

// Match returns the flag set by the last ApplyMatch.
func (c *Cell) Match() Match {
	return c.match
}

// ApplyMatch evaluates p against the cell's current text, stores and signals
// the result, and returns it.
func (c *Cell) ApplyMatch(p query.Predicate) bool {
	matched := p(c.node.Text())
	if matched {
		c.match = MatchTrue
	} else {
		c.match = MatchFalse
	}
	c.node.SetMatch(matched)
	return matched
}

func (c *Cell) teardown() {
	c.node.ClearMatch()
	c.match = MatchUnknown
}

// matcher compiles queries for every row of a table. Consecutive rows filter
// the same query, so the last predicate is reused.
type matcher struct {
	ignoreCase bool
	custom     query.Func
	query      string
	pred       query.Predicate
}

func (m *matcher) predicate(q string) query.Predicate {
	if m.pred != nil && m.query == q {
		return m.pred
	}
	if m.custom != nil {
		m.pred = query.Bind(m.custom, q)
	} else {
		m.pred = query.Compile(q, m.ignoreCase)
	}
	m.query = q
	return m.pred
}
