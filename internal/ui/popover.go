// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/query"
)

// maxSuggestions bounds the list drawn under the input.
const maxSuggestions = 8

// popover is the filter input of one column.
type popover struct {
	spec      filterable.SurfaceSpec
	col       int
	input     textinput.Model
	value     string
	active    bool
	visible   bool
	destroyed bool
}

func newPopover(spec filterable.SurfaceSpec) *popover {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = `joh*, \NULL`
	ti.CharLimit = 256
	ti.Width = 40
	ti.ShowSuggestions = true

	return &popover{spec: spec, col: spec.Index, input: ti}
}

func (p *popover) SetIndex(col int) { p.col = col }

func (p *popover) SetInputValue(q string) {
	p.value = q
	p.input.SetValue(q)
}

func (p *popover) ProvideSuggestions(values []string) {
	p.input.SetSuggestions(values)
}

func (p *popover) SetActive(active bool) { p.active = active }

func (p *popover) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p *popover) Destroy() {
	p.Hide()
	p.destroyed = true
}

// show opens the popover with the last committed value and asks for
// suggestions.
func (p *popover) show() {
	p.visible = true
	p.input.SetValue(p.value)
	p.input.CursorEnd()
	p.input.Focus()
	if p.spec.OnShow != nil {
		p.spec.OnShow()
	}
	log.Debugf("popover shown: col=%d", p.col)
}

func (p *popover) commit() {
	p.spec.OnFilter(p, p.input.Value(), p.col)
}

func (p *popover) clear() {
	p.input.SetValue("")
	p.spec.OnFilter(p, "", p.col)
}

// matches returns the suggestions the typed text would keep, ignoring case.
func (p *popover) matches() []string {
	keep := query.Compile(p.input.Value(), true)
	var out []string
	for _, s := range p.input.AvailableSuggestions() {
		if keep(s) {
			out = append(out, s)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
