// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import (
	"slices"
)

// policy decides which columns are filterable. A non-nil only list is an
// allow-list and the ignore list is not consulted.
type policy struct {
	ignore []int
	only   []int
}

func (p policy) included(col int) bool {
	if p.only != nil {
		return slices.Contains(p.only, col)
	}
	return !slices.Contains(p.ignore, col)
}

// resolvePolicy merges the configured lists with the header markers. The
// option slices are copied, never extended in place.
func resolvePolicy(o *options, header []HeaderNode) policy {
	p := policy{
		ignore: slices.Clone(o.ignoreColumns),
	}
	if o.onlyColumns != nil {
		p.only = append([]int{}, o.onlyColumns...)
	}

	for col, h := range header {
		if h.Ignore() && !slices.Contains(p.ignore, col) {
			p.ignore = append(p.ignore, col)
		}
		if h.Filter() {
			if p.only == nil {
				p.only = []int{}
			}
			if !slices.Contains(p.only, col) {
				p.only = append(p.only, col)
			}
		}
	}

	return p
}
