// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import (
	"github.com/tfctl/colfilter/internal/query"
)

// Hook runs before or after a column filter. It cannot cancel the filter.
type Hook func(t Table, col int, query string)

// options holds the controller configuration.
type options struct {
	ignoreColumns   []int
	onlyColumns     []int
	ignoreCase      bool
	popoverSelector string
	titleTemplate   string
	useHash         bool
	store           StateStore
	beforeFilter    Hook
	afterFilter     Hook
	isMatch         query.Func
	onFilter        OnFilterFunc
	surfaces        SurfaceFactory
}

func defaultOptions() options {
	return options{
		ignoreCase: true,
		useHash:    true,
	}
}

// Option customizes a Controller.
type Option func(*options)

// WithIgnoreColumns excludes columns from filtering. Ignored when an
// allow-list is present.
func WithIgnoreColumns(cols ...int) Option {
	return func(o *options) { o.ignoreColumns = append(o.ignoreColumns, cols...) }
}

// WithOnlyColumns restricts filtering to cols. Calling it with no columns
// still installs an (empty) allow-list.
func WithOnlyColumns(cols ...int) Option {
	return func(o *options) { o.onlyColumns = append(append([]int{}, o.onlyColumns...), cols...) }
}

// WithIgnoreCase sets case-insensitive matching. Defaults to true.
func WithIgnoreCase(ignore bool) Option {
	return func(o *options) { o.ignoreCase = ignore }
}

// WithPopoverSelector is passed through to the SurfaceFactory to locate the
// header element that toggles the popover.
func WithPopoverSelector(selector string) Option {
	return func(o *options) { o.popoverSelector = selector }
}

// WithTitleTemplate sets the popover title template, e.g. "Filter %field%".
func WithTitleTemplate(tpl string) Option {
	return func(o *options) { o.titleTemplate = tpl }
}

// WithHash enables the persisted-state bridge. Defaults to true; it has no
// effect without a store.
func WithHash(use bool) Option {
	return func(o *options) { o.useHash = use }
}

// WithStateStore sets the persisted-state store.
func WithStateStore(s StateStore) Option {
	return func(o *options) { o.store = s }
}

// WithBeforeFilter runs h before every column sweep.
func WithBeforeFilter(h Hook) Option {
	return func(o *options) { o.beforeFilter = h }
}

// WithAfterFilter runs h after every column sweep.
func WithAfterFilter(h Hook) Option {
	return func(o *options) { o.afterFilter = h }
}

// WithIsMatch replaces the glob matcher.
func WithIsMatch(fn query.Func) Option {
	return func(o *options) { o.isMatch = fn }
}

// WithOnFilter replaces the default commit handler.
func WithOnFilter(fn OnFilterFunc) Option {
	return func(o *options) { o.onFilter = fn }
}

// WithSurfaceFactory sets how popovers are built. Without one the controller
// runs headless.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(o *options) { o.surfaces = f }
}
