// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import "maps"

// mark mirrors the visual state pushed into a fake node.
type mark int

const (
	unmarked mark = iota
	marked
	mismatched
)

type fakeCell struct {
	text string
	mark mark
	sets int
}

func (c *fakeCell) Text() string { return c.text }
func (c *fakeCell) SetMatch(m bool) {
	c.sets++
	if m {
		c.mark = marked
	} else {
		c.mark = mismatched
	}
}
func (c *fakeCell) ClearMatch() { c.mark = unmarked }

type fakeRow struct {
	cells []*fakeCell
	mark  mark
}

func (r *fakeRow) Len() int              { return len(r.cells) }
func (r *fakeRow) Cell(col int) CellNode { return r.cells[col] }
func (r *fakeRow) ClearMatch()           { r.mark = unmarked }
func (r *fakeRow) SetMatch(m bool) {
	if m {
		r.mark = marked
	} else {
		r.mark = mismatched
	}
}

type fakeHeader struct {
	text   string
	title  string
	ignore bool
	filter bool
}

func (h fakeHeader) Text() string  { return h.text }
func (h fakeHeader) Title() string { return h.title }
func (h fakeHeader) Ignore() bool  { return h.ignore }
func (h fakeHeader) Filter() bool  { return h.filter }

type fakeTable struct {
	id         string
	header     []fakeHeader
	rows       []*fakeRow
	filterable bool
	rowCalls   int
}

func (t *fakeTable) ID() string { return t.id }
func (t *fakeTable) Header() []HeaderNode {
	h := make([]HeaderNode, len(t.header))
	for i := range t.header {
		h[i] = t.header[i]
	}
	return h
}
func (t *fakeTable) Rows() []RowNode {
	t.rowCalls++
	rows := make([]RowNode, len(t.rows))
	for i := range t.rows {
		rows[i] = t.rows[i]
	}
	return rows
}
func (t *fakeTable) SetFilterable(on bool) { t.filterable = on }

// newFakeTable builds a table whose first record is the header.
func newFakeTable(id string, records ...[]string) *fakeTable {
	t := &fakeTable{id: id}
	for _, h := range records[0] {
		t.header = append(t.header, fakeHeader{text: h})
	}
	for _, rec := range records[1:] {
		r := &fakeRow{}
		for _, text := range rec {
			r.cells = append(r.cells, &fakeCell{text: text})
		}
		t.rows = append(t.rows, r)
	}
	return t
}

func (t *fakeTable) rowMarks() []mark {
	marks := make([]mark, len(t.rows))
	for i, r := range t.rows {
		marks[i] = r.mark
	}
	return marks
}

type fakeSurface struct {
	spec        SurfaceSpec
	index       int
	input       string
	suggestions []string
	active      bool
	hidden      int
	destroyed   bool
}

func (s *fakeSurface) SetIndex(col int)              { s.index = col }
func (s *fakeSurface) SetInputValue(q string)        { s.input = q }
func (s *fakeSurface) ProvideSuggestions(v []string) { s.suggestions = v }
func (s *fakeSurface) SetActive(active bool)         { s.active = active }
func (s *fakeSurface) Hide()                         { s.hidden++ }
func (s *fakeSurface) Destroy()                      { s.destroyed = true }
func (s *fakeSurface) show()                         { s.spec.OnShow() }
func (s *fakeSurface) commit(q string)               { s.spec.OnFilter(s, q, s.index) }

// surfaceRecorder is a SurfaceFactory that keeps what it built.
type surfaceRecorder struct {
	built map[int]*fakeSurface
}

func (r *surfaceRecorder) factory(spec SurfaceSpec) Surface {
	if r.built == nil {
		r.built = make(map[int]*fakeSurface)
	}
	s := &fakeSurface{spec: spec}
	r.built[spec.Index] = s
	return s
}

// memStore notifies subscribers synchronously, like a hashchange handler
// that runs inline.
type memStore struct {
	values map[string]string
	subs   map[int]func()
	next   int
}

func newMemStore(kv map[string]string) *memStore {
	return &memStore{values: maps.Clone(kv), subs: make(map[int]func())}
}

func (m *memStore) Get(key string) string { return m.values[key] }
func (m *memStore) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.notify()
}
func (m *memStore) Remove(key string) {
	delete(m.values, key)
	m.notify()
}
func (m *memStore) Subscribe(fn func()) func() {
	id := m.next
	m.next++
	m.subs[id] = fn
	return func() { delete(m.subs, id) }
}
func (m *memStore) notify() {
	for _, fn := range m.subs {
		fn()
	}
}
