// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/hashstate"
	"github.com/tfctl/colfilter/internal/source"
)

func people() *grid.Table {
	return grid.New(&source.Data{
		ID:      "people",
		Columns: columns.FromHeader([]string{"Name", "!Age", "City:Home town"}),
		Records: [][]string{
			{"John", "31", "Boston"},
			{"Johnny", "22", "Austin"},
			{"Mark", "45", "Boston"},
		},
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

func marks(t *grid.Table) []grid.Mark {
	var out []grid.Mark
	for _, r := range t.GridRows() {
		out = append(out, r.Mark())
	}
	return out
}

func TestNewBuildsPopovers(t *testing.T) {
	m := New(people(), Options{Filter: []filterable.Option{filterable.WithTitleTemplate("Filter %field%")}})

	assert.Len(t, m.popovers, 2)
	assert.Equal(t, "Filter Name", m.popovers[0].spec.Title)
	assert.Equal(t, "Filter Home town", m.popovers[2].spec.Title)
	assert.Equal(t, 0, m.selected)
	assert.True(t, m.Controller().Initialized())
}

func TestFilterThroughPopover(t *testing.T) {
	table := people()
	m := New(table, Options{})

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.open)
	assert.Equal(t, []string{"John", "Johnny", "Mark"}, m.open.input.AvailableSuggestions())

	typeText(m, "joh*")
	assert.Equal(t, "joh*", m.open.input.Value())
	assert.Equal(t, []string{"John", "Johnny"}, m.open.matches())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.open)
	assert.Equal(t, []grid.Mark{grid.Matched, grid.Matched, grid.Mismatched}, marks(table))
	assert.True(t, m.popovers[0].active)

	q, _ := m.Controller().Query(0)
	assert.Equal(t, "joh*", q)
}

func TestSuggestionsFollowOtherFilters(t *testing.T) {
	m := New(people(), Options{})
	m.Controller().Filter("boston", 2)

	press(m, runes("/"))
	require.NotNil(t, m.open)
	assert.Equal(t, []string{"John", "Mark"}, m.open.input.AvailableSuggestions())
}

func TestClearAndClose(t *testing.T) {
	table := people()
	m := New(table, Options{})

	press(m, runes("/"))
	typeText(m, "mark")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, grid.Mismatched, table.GridRows()[0].Mark())

	// Reopening shows the committed query.
	press(m, runes("/"))
	assert.Equal(t, "mark", m.open.input.Value())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Nil(t, m.open)
	assert.False(t, m.popovers[0].active)
	assert.Equal(t, []grid.Mark{grid.Matched, grid.Matched, grid.Matched}, marks(table))

	press(m, runes("/"))
	typeText(m, "x")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.open)
	q, _ := m.Controller().Query(0)
	assert.Equal(t, "", q, "esc does not commit")
}

func TestExcludedColumn(t *testing.T) {
	m := New(people(), Options{})

	press(m, runes("l"))
	assert.Equal(t, 1, m.selected)
	press(m, runes("/"))
	assert.Nil(t, m.open)
	assert.Contains(t, m.status, `"Age" is not filterable`)

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.selected)
	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.selected)
}

func TestHistoryKeys(t *testing.T) {
	store, err := hashstate.New("")
	require.NoError(t, err)
	table := people()
	m := New(table, Options{
		Filter:  []filterable.Option{filterable.WithStateStore(store)},
		History: store,
	})

	press(m, runes("/"))
	typeText(m, "austin")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("l"), runes("l"), runes("/"))
	typeText(m, "aus")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Name filter "austin" mismatches everyone.
	assert.Equal(t, []grid.Mark{grid.Mismatched, grid.Mismatched, grid.Mismatched}, marks(table))
	assert.Equal(t, "austin", store.Get(filterable.FilterKey("people", 0)))

	press(m, runes("["))
	assert.Equal(t, "", store.Get(filterable.FilterKey("people", 2)))
	q, _ := m.Controller().Query(2)
	assert.Equal(t, "", q)

	press(m, runes("["))
	assert.Equal(t, []grid.Mark{grid.Matched, grid.Matched, grid.Matched}, marks(table))
	assert.False(t, m.popovers[0].active)

	press(m, runes("["))
	assert.Equal(t, "no more history", m.status)

	press(m, runes("]"), runes("]"))
	q, _ = m.Controller().Query(2)
	assert.Equal(t, "aus", q)
	assert.True(t, m.popovers[2].active)
	assert.Equal(t, "aus", m.popovers[2].value)
}

func TestNoHistory(t *testing.T) {
	m := New(people(), Options{})
	press(m, runes("]"))
	assert.Equal(t, "no filter history", m.status)
}

func TestHideMismatched(t *testing.T) {
	m := New(people(), Options{})
	m.Controller().Filter("boston", 2)

	assert.Len(t, m.rows(), 3)
	press(m, runes("m"))
	assert.Len(t, m.rows(), 2)

	view := m.View()
	assert.NotContains(t, view, "Johnny")
	assert.Contains(t, view, "2 of 3 rows match, 1 filter (mismatches hidden)")
}

func TestView(t *testing.T) {
	m := New(people(), Options{Title: "people.csv"})
	press(m, tea.WindowSizeMsg{Width: 80, Height: 20})

	view := m.View()
	for _, want := range []string{"people.csv", "Name", "Age", "City", "Johnny", "3 of 3 rows match, 0 filters"} {
		assert.Contains(t, view, want)
	}

	press(m, runes("/"))
	view = m.View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "apply")
}

func TestPaging(t *testing.T) {
	m := New(people(), Options{})
	press(m, tea.WindowSizeMsg{Width: 80, Height: chromeLines + 2})

	assert.Len(t, m.page(m.rows()), 2)
	press(m, runes("j"))
	assert.Equal(t, "Johnny", m.page(m.rows())[0].Values(3)[0])
	press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.offset)
	press(m, runes("k"))
	assert.Equal(t, 1, m.offset)
}

func TestQuit(t *testing.T) {
	m := New(people(), Options{})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDestroyedPopoverDoesNotOpen(t *testing.T) {
	m := New(people(), Options{})
	m.Controller().Teardown()
	press(m, runes("/"))
	assert.Nil(t, m.open)
}
