// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filterable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRow(p policy, width int, texts ...string) (*Row, *fakeRow) {
	node := &fakeRow{}
	for _, text := range texts {
		node.cells = append(node.cells, &fakeCell{text: text})
	}
	return newRow(node, width, p, &matcher{ignoreCase: true}), node
}

func TestRowSlots(t *testing.T) {
	r, _ := newTestRow(policy{ignore: []int{1}}, 3, "a", "b", "c")

	assert.NotNil(t, r.CellAt(0))
	assert.Nil(t, r.CellAt(1))
	assert.NotNil(t, r.CellAt(2))
	assert.Nil(t, r.CellAt(-1))
	assert.Nil(t, r.CellAt(3))

	assert.True(t, r.IsColumnIncluded(0))
	assert.False(t, r.IsColumnIncluded(1))

	// Excluded columns still have readable text.
	assert.Equal(t, "b", r.Text(1))
	assert.Equal(t, "", r.Text(7))
}

func TestRowShortIsPadded(t *testing.T) {
	r, _ := newTestRow(policy{}, 3, "a")
	require.NotNil(t, r.CellAt(2))
	assert.Equal(t, "", r.CellAt(2).Text())

	r.FilterColumn(`\NULL`, 2)
	assert.Equal(t, MatchTrue, r.CellAt(2).Match())
	assert.False(t, r.HasMismatch())
}

func TestRowHasMismatch(t *testing.T) {
	tests := []struct {
		name  string
		flags []Match
		want  bool
	}{
		{name: "match mismatch excluded", flags: []Match{MatchTrue, MatchFalse}, want: true},
		{name: "match unknown excluded", flags: []Match{MatchTrue, MatchUnknown}, want: false},
		{name: "all unknown", flags: []Match{MatchUnknown, MatchUnknown}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRow(policy{ignore: []int{2}}, 3, "a", "b", "c")
			for col, m := range tt.flags {
				r.CellAt(col).match = m
			}
			assert.Equal(t, tt.want, r.HasMismatch())
		})
	}
}

func TestRowFilterColumn(t *testing.T) {
	r, node := newTestRow(policy{}, 2, "John", "Smith")

	r.FilterColumn("joh*", 0)
	assert.Equal(t, marked, node.mark)
	assert.Equal(t, marked, node.cells[0].mark)
	assert.Equal(t, unmarked, node.cells[1].mark)

	r.FilterColumn("jones", 1)
	assert.Equal(t, mismatched, node.mark)
	assert.Equal(t, mismatched, node.cells[1].mark)

	// Clearing one column re-marks the row from the aggregate.
	r.FilterColumn("", 1)
	assert.Equal(t, marked, node.mark)

	r.teardown()
	assert.Equal(t, unmarked, node.mark)
	assert.Equal(t, unmarked, node.cells[0].mark)
	assert.Equal(t, MatchUnknown, r.CellAt(0).Match())
}

func TestRowFilterExcludedPanics(t *testing.T) {
	r, _ := newTestRow(policy{ignore: []int{1}}, 2, "a", "b")
	assert.PanicsWithValue(t, "filterable: column 1 is excluded from filtering", func() {
		r.FilterColumn("a", 1)
	})
}
