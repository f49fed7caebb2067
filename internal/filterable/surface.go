// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import "strings"

// Surface is the filter popover of one column.
type Surface interface {
	SetIndex(col int)
	// SetInputValue sets the text the input shows next time it opens.
	SetInputValue(query string)
	ProvideSuggestions(values []string)
	// SetActive toggles the "filter applied" mark on the column header.
	SetActive(active bool)
	Hide()
	Destroy()
}

// SurfaceSpec is everything a SurfaceFactory needs to build a popover.
type SurfaceSpec struct {
	Index    int
	Header   HeaderNode
	Title    string
	Selector string

	// OnFilter must be called when the user commits a query. Clearing the
	// input commits the empty string.
	OnFilter OnFilterFunc
	// OnShow must be called when the popover opens. The controller answers
	// with ProvideSuggestions.
	OnShow func()
}

// SurfaceFactory builds the popover for one column.
type SurfaceFactory func(spec SurfaceSpec) Surface

// OnFilterFunc handles a committed query.
type OnFilterFunc func(s Surface, query string, col int)

// surfaceTitle renders the popover title of a header through tpl. The
// "%field%" placeholder is replaced by the header title or text.
func surfaceTitle(h HeaderNode, tpl string) string {
	title := h.Title()
	if title == "" {
		title = strings.TrimSpace(h.Text())
	}
	if title == "" || tpl == "" {
		return title
	}
	return strings.Replace(tpl, "%field%", title, 1)
}
