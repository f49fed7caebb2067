// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import (
	"fmt"
	"slices"

	"github.com/tfctl/colfilter/internal/log"
)

// Controller owns the filter state of one table.
type Controller struct {
	table   Table
	opts    options
	policy  policy
	width   int
	columns []int
	matcher *matcher

	rows   []*Row
	byNode map[RowNode]*Row

	surfaces    map[int]Surface
	registry    registry
	unsubscribe func()
	initialized bool
}

// Stats summarizes the table-level match state.
type Stats struct {
	Rows    int
	Matched int
	// Filters counts columns with a non-empty query.
	Filters int
}

// New prepares a controller for table. Column inclusion is decided here, once.
func New(table Table, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	header := table.Header()
	c := &Controller{
		table:    table,
		opts:     o,
		policy:   resolvePolicy(&o, header),
		width:    len(header),
		matcher:  &matcher{ignoreCase: o.ignoreCase, custom: o.isMatch},
		surfaces: make(map[int]Surface),
	}
	for col := 0; col < c.width; col++ {
		if c.policy.included(col) {
			c.columns = append(c.columns, col)
		}
	}
	log.Debugf("filterable new: table=%q width=%d columns=%v", table.ID(), c.width, c.columns)

	return c
}

// Init marks the table, builds the surfaces and applies persisted queries.
// Calling it on an initialized controller does nothing.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true
	c.table.SetFilterable(true)

	header := c.table.Header()
	for _, col := range c.columns {
		s := c.buildSurface(col, header[col])

		if !c.hashEnabled() {
			continue
		}
		initial := c.opts.store.Get(c.Key(col))
		if initial == "" {
			continue
		}
		log.Debugf("initial filter: col=%d query=%q", col, initial)
		if s != nil {
			s.SetInputValue(initial)
			s.SetActive(true)
		}
		c.Filter(initial, col)
	}

	if c.hashEnabled() {
		c.unsubscribe = c.opts.store.Subscribe(c.stateChanged)
	}
}

func (c *Controller) buildSurface(col int, h HeaderNode) Surface {
	if c.opts.surfaces == nil {
		return nil
	}

	onFilter := c.opts.onFilter
	if onFilter == nil {
		onFilter = c.commit
	}

	var s Surface
	s = c.opts.surfaces(SurfaceSpec{
		Index:    col,
		Header:   h,
		Title:    surfaceTitle(h, c.opts.titleTemplate),
		Selector: c.opts.popoverSelector,
		OnFilter: onFilter,
		OnShow: func() {
			if s != nil {
				s.ProvideSuggestions(c.CollectSuggestions(col))
			}
		},
	})
	if s == nil {
		return nil
	}
	s.SetIndex(col)
	c.surfaces[col] = s
	return s
}

// Initialized reports whether Init ran since the last Teardown.
func (c *Controller) Initialized() bool {
	return c.initialized
}

// Table returns the table the controller is attached to.
func (c *Controller) Table() Table {
	return c.table
}

// Width returns the header column count.
func (c *Controller) Width() int {
	return c.width
}

// Columns returns the filterable column indices in order.
func (c *Controller) Columns() []int {
	return slices.Clone(c.columns)
}

// IsColumnIncluded applies the column policy. With an allow-list, inclusion
// is membership in it; otherwise it is absence from the deny-list.
func (c *Controller) IsColumnIncluded(col int) bool {
	return col >= 0 && col < c.width && c.policy.included(col)
}

// Key returns the persisted-state key of col.
func (c *Controller) Key(col int) string {
	return FilterKey(c.table.ID(), col)
}

// Filter applies q to column col on every row. It panics when col is not
// filterable.
func (c *Controller) Filter(q string, col int) {
	if !c.IsColumnIncluded(col) {
		panic(fmt.Sprintf("filterable: column %d is excluded from filtering", col))
	}

	if c.opts.beforeFilter != nil {
		c.opts.beforeFilter(c.table, col, q)
	}

	c.ensureRows()
	for _, r := range c.rows {
		r.FilterColumn(q, col)
	}
	c.registry.set(col, q)
	log.Debugf("filtered: col=%d query=%q rows=%d", col, q, len(c.rows))

	if c.opts.afterFilter != nil {
		c.opts.afterFilter(c.table, col, q)
	}
}

// CollectSuggestions returns the distinct texts of col across the rows that
// currently match every active filter, in first-seen order. Columns outside
// the header return nil.
func (c *Controller) CollectSuggestions(col int) []string {
	if col < 0 || col >= c.width {
		return nil
	}
	c.ensureRows()

	var values []string
	seen := make(map[string]struct{})
	for _, r := range c.rows {
		if r.HasMismatch() {
			continue
		}
		text := r.Text(col)
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		values = append(values, text)
	}

	return values
}

// HandleExternalQueryChange filters col with q unless q equals the last query
// applied to it. An unset column compares equal to "".
func (c *Controller) HandleExternalQueryChange(col int, q string) {
	last, _ := c.registry.get(col)
	if q == last {
		log.Tracef("external change ignored: col=%d query=%q", col, q)
		return
	}
	c.Filter(q, col)
}

// Query returns the last query applied to col.
func (c *Controller) Query(col int) (string, bool) {
	return c.registry.get(col)
}

// Queries returns a copy of the last query per column.
func (c *Controller) Queries() map[int]string {
	return c.registry.snapshot()
}

// Surface returns the popover of col, if one was built.
func (c *Controller) Surface(col int) (Surface, bool) {
	s, ok := c.surfaces[col]
	return s, ok
}

// Rows returns the row states, building them if needed.
func (c *Controller) Rows() []*Row {
	c.ensureRows()
	return slices.Clone(c.rows)
}

// RowFor returns the state attached to a row element.
func (c *Controller) RowFor(node RowNode) (*Row, bool) {
	c.ensureRows()
	r, ok := c.byNode[node]
	return r, ok
}

// Stats counts matching rows and active filters.
func (c *Controller) Stats() Stats {
	c.ensureRows()
	st := Stats{Rows: len(c.rows)}
	for _, r := range c.rows {
		if !r.HasMismatch() {
			st.Matched++
		}
	}
	for _, q := range c.registry.queries {
		if q != "" {
			st.Filters++
		}
	}
	return st
}

// Teardown removes every mark and releases rows and surfaces. It is safe to
// call more than once and before Init.
func (c *Controller) Teardown() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}

	for _, col := range c.columns {
		if s, ok := c.surfaces[col]; ok {
			s.Destroy()
		}
	}
	c.surfaces = make(map[int]Surface)

	for _, r := range c.rows {
		r.teardown()
	}
	c.rows = nil
	c.byNode = nil
	c.registry.reset()

	c.table.SetFilterable(false)
	c.initialized = false
	log.Debugf("filterable teardown: table=%q", c.table.ID())
}

// commit is the default OnFilter handler. The sweep runs before the store is
// touched so the change notification finds the registry up to date.
func (c *Controller) commit(s Surface, q string, col int) {
	s.Hide()
	s.SetInputValue(q)
	c.Filter(q, col)

	if q == "" {
		if c.hashEnabled() {
			c.opts.store.Remove(c.Key(col))
		}
		s.SetActive(false)
		return
	}

	if c.hashEnabled() {
		c.opts.store.Set(c.Key(col), q)
	}
	s.SetActive(true)
}

// stateChanged refreshes every surface from the store and re-filters the
// columns whose persisted query moved away from the applied one.
func (c *Controller) stateChanged() {
	for _, col := range c.columns {
		q := c.opts.store.Get(c.Key(col))
		if s, ok := c.surfaces[col]; ok {
			s.SetInputValue(q)
			s.SetActive(q != "")
		}
		c.HandleExternalQueryChange(col, q)
	}
}

func (c *Controller) hashEnabled() bool {
	return c.opts.useHash && c.opts.store != nil
}

func (c *Controller) ensureRows() {
	if c.rows != nil {
		return
	}

	nodes := c.table.Rows()
	c.rows = make([]*Row, 0, len(nodes))
	c.byNode = make(map[RowNode]*Row, len(nodes))
	for _, n := range nodes {
		r := newRow(n, c.width, c.policy, c.matcher)
		c.rows = append(c.rows, r)
		c.byNode[n] = r
	}
	log.Debugf("rows built: count=%d", len(c.rows))
}
