// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import "maps"

// registry remembers the last query applied to each column.
type registry struct {
	queries map[int]string
}

func (r *registry) get(col int) (string, bool) {
	q, ok := r.queries[col]
	return q, ok
}

func (r *registry) set(col int, q string) {
	if r.queries == nil {
		r.queries = make(map[int]string)
	}
	r.queries[col] = q
}

func (r *registry) snapshot() map[int]string {
	return maps.Clone(r.queries)
}

func (r *registry) reset() {
	r.queries = nil
}
