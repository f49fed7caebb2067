// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/source"
)

var (
	_ filterable.Table      = (*Table)(nil)
	_ filterable.HeaderNode = Header{}
	_ filterable.RowNode    = (*Row)(nil)
)

func people() *Table {
	return New(&source.Data{
		ID:      "people",
		Columns: columns.FromHeader([]string{"Name", "!Age", "City:Home town"}),
		Records: [][]string{
			{"John", "31", "Boston"},
			{"Johnny", "22", "Austin"},
			{"Mark", "45"},
		},
	})
}

func indexes(rows []*Row) []int {
	var out []int
	for _, r := range rows {
		out = append(out, r.Index())
	}
	return out
}

func TestTableIsFilterable(t *testing.T) {
	table := people()
	c := filterable.New(table)

	assert.Equal(t, []int{0, 2}, c.Columns(), "header markers reach the controller")
	c.Init()
	assert.True(t, table.Filterable())

	c.Filter("joh*", 0)
	rows := table.GridRows()
	assert.Equal(t, Matched, rows[0].Mark())
	assert.Equal(t, Matched, rows[1].Mark())
	assert.Equal(t, Mismatched, rows[2].Mark())
	assert.Equal(t, Mismatched, rows[2].At(0).Mark())
	assert.Equal(t, Unmarked, rows[0].At(1).Mark())

	c.Filter(`\NULL`, 2)
	assert.Equal(t, Mismatched, rows[0].Mark())
	assert.Equal(t, Mismatched, rows[2].Mark(), "still mismatched on Name")
	assert.Nil(t, rows[2].At(2))

	c.Filter("", 0)
	assert.Equal(t, Matched, rows[2].Mark(), "the short row's padded City is blank")

	c.Teardown()
	assert.False(t, table.Filterable())
	assert.Equal(t, Unmarked, rows[0].Mark())
	assert.Equal(t, Unmarked, rows[0].At(0).Mark())
}

func TestCellTextIsLive(t *testing.T) {
	table := people()
	c := filterable.New(table)

	c.Filter("boston", 2)
	assert.Equal(t, []int{0}, indexes(table.Select(HideMismatched)))

	table.GridRows()[1].At(2).SetText("Boston")
	c.Filter("boston", 2)
	assert.Equal(t, []int{0, 1}, indexes(table.Select(HideMismatched)))
}

func TestHeader(t *testing.T) {
	table := people()
	h := table.Header()
	require.Len(t, h, 3)
	assert.Equal(t, "Age", h[1].Text())
	assert.True(t, h[1].Ignore())
	assert.Equal(t, "Home town", h[2].Title())
	assert.Equal(t, []string{"Name", "Age", "City"}, table.Names())
	assert.Equal(t, 3, table.Width())
	assert.Len(t, table.Columns(), 3)
}

func TestSelect(t *testing.T) {
	table := people()
	rows := table.GridRows()
	rows[1].SetMatch(false)
	rows[2].SetMatch(true)

	assert.Equal(t, []int{0, 1, 2}, indexes(table.Select(ShowAll)))
	assert.Equal(t, []int{0, 2}, indexes(table.Select(HideMismatched)))
	assert.Equal(t, []int{1}, indexes(table.Select(OnlyMismatched)))
}

func TestParseVisible(t *testing.T) {
	for in, want := range map[string]Visible{"": ShowAll, "show": ShowAll, "hide": HideMismatched, "only": OnlyMismatched} {
		got, ok := ParseVisible(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseVisible("some")
	assert.False(t, ok)
}

func TestValues(t *testing.T) {
	rows := people().GridRows()
	assert.Equal(t, []string{"Mark", "45", ""}, rows[2].Values(3))
	assert.Equal(t, "", Unmarked.String())
	assert.Equal(t, "mismatch", Mismatched.String())
}
