// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package ui is the interactive table viewer. Each filterable column gets a
// popover with an input and suggestions drawn from the rows that currently
// match; committing the input filters the column.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/log"
)

// History moves through persisted filter states.
type History interface {
	Back() bool
	Forward() bool
}

// Options configures a Model.
type Options struct {
	// Filter is passed to the controller after the popover factory.
	Filter []filterable.Option
	// History enables the back and forward keys.
	History History
	// HideMismatched starts with mismatching rows hidden.
	HideMismatched bool
	// Title is drawn above the table.
	Title string
}

// Model is the bubbletea model of the viewer.
type Model struct {
	table    *grid.Table
	ctrl     *filterable.Controller
	history  History
	popovers map[int]*popover
	open     *popover

	title    string
	selected int
	offset   int
	hide     bool
	width    int
	height   int
	status   string
	keys     keyMap
	help     help.Model
}

// New attaches a controller to table and builds the popovers.
func New(table *grid.Table, o Options) *Model {
	m := &Model{
		table:    table,
		history:  o.History,
		popovers: make(map[int]*popover),
		title:    o.Title,
		hide:     o.HideMismatched,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}

	opts := append([]filterable.Option{filterable.WithSurfaceFactory(m.newSurface)}, o.Filter...)
	m.ctrl = filterable.New(table, opts...)
	m.ctrl.Init()
	if cols := m.ctrl.Columns(); len(cols) > 0 {
		m.selected = cols[0]
	}

	return m
}

func (m *Model) newSurface(spec filterable.SurfaceSpec) filterable.Surface {
	p := newPopover(spec)
	m.popovers[spec.Index] = p
	return p
}

// Controller exposes the filter controller, e.g. to tear it down after the
// program exits.
func (m *Model) Controller() *filterable.Controller {
	return m.ctrl
}

// Run starts the program and blocks until the user quits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.open != nil {
			return m, m.updatePopover(msg)
		}
		return m, m.updateTable(msg)
	}
	return m, nil
}

func (m *Model) updatePopover(msg tea.KeyMsg) tea.Cmd {
	p := m.open
	switch {
	case key.Matches(msg, m.keys.Commit):
		p.commit()
	case key.Matches(msg, m.keys.Clear):
		p.clear()
	case key.Matches(msg, m.keys.Close):
		p.Hide()
	default:
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.visible {
		m.open = nil
		m.offset = 0
	}
	return nil
}

func (m *Model) updateTable(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < m.table.Width()-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(msg, m.keys.Down):
		if m.offset < len(m.rows())-1 {
			m.offset++
		}
	case key.Matches(msg, m.keys.Open):
		return m.openPopover()
	case key.Matches(msg, m.keys.Back):
		m.move(false)
	case key.Matches(msg, m.keys.Forward):
		m.move(true)
	case key.Matches(msg, m.keys.Mismatch):
		m.hide = !m.hide
		m.offset = 0
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) openPopover() tea.Cmd {
	p, ok := m.popovers[m.selected]
	if !ok || p.destroyed {
		m.status = fmt.Sprintf("column %q is not filterable", m.table.Names()[m.selected])
		return nil
	}
	m.open = p
	p.show()
	return nil
}

func (m *Model) move(forward bool) {
	if m.history == nil {
		m.status = "no filter history"
		return
	}
	var moved bool
	if forward {
		moved = m.history.Forward()
	} else {
		moved = m.history.Back()
	}
	if !moved {
		m.status = "no more history"
	}
	m.offset = 0
	log.Debugf("history move: forward=%v moved=%v", forward, moved)
}

// rows returns the rows currently drawn.
func (m *Model) rows() []*grid.Row {
	if m.hide {
		return m.table.Select(grid.HideMismatched)
	}
	return m.table.Select(grid.ShowAll)
}
