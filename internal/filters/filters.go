// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/log"
)

// filterRegex splits an expression at its first '='. The column part may
// not be empty; the query part may.
var filterRegex = regexp.MustCompile(`^([^=]+)=(.*)$`)

// ErrExcludedColumn is returned when a filter names a column that does not
// take filters.
var ErrExcludedColumn = errors.New("column is excluded from filtering")

// Filter is a single parsed --filter expression.
type Filter struct {
	Column string `yaml:"column" json:"Column"`
	Query  string `yaml:"query" json:"Query"`
}

// Resolved is a Filter bound to a column index.
type Resolved struct {
	Col   int
	Query string
}

// Filterer is what filters are applied to.
type Filterer interface {
	IsColumnIncluded(col int) bool
	Filter(query string, col int)
}

// Delimiter returns the expression separator.
func Delimiter() string {
	if d, ok := os.LookupEnv("COLFILTER_FILTER_DELIM"); ok && d != "" {
		return d
	}
	return ","
}

// BuildFilters parses a spec into filters. Invalid expressions are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	for _, expr := range strings.Split(spec, Delimiter()) {
		if strings.TrimSpace(expr) == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			log.Errorf("invalid filter: %s", expr)
			continue
		}

		filters = append(filters, Filter{
			Column: strings.TrimSpace(parts[1]),
			Query:  parts[2],
		})
	}
	log.Debugf("filters built: count=%d", len(filters))

	return filters
}

// Resolve binds each filter to its column index. A later filter on the same
// column replaces an earlier one, keeping the earlier position.
func Resolve(filters []Filter, cols columns.List) ([]Resolved, error) {
	var out []Resolved
	pos := make(map[int]int)

	for _, f := range filters {
		col, err := cols.Index(f.Column)
		if err != nil {
			return nil, fmt.Errorf("filter %s=%s: %w", f.Column, f.Query, err)
		}
		if i, ok := pos[col]; ok {
			out[i].Query = f.Query
			continue
		}
		pos[col] = len(out)
		out = append(out, Resolved{Col: col, Query: f.Query})
	}

	return out, nil
}

// Apply runs each filter in order. Every column is checked before the first
// filter runs, so an error leaves the table untouched.
func Apply(target Filterer, resolved []Resolved) error {
	for _, r := range resolved {
		if !target.IsColumnIncluded(r.Col) {
			return fmt.Errorf("column %d: %w", r.Col, ErrExcludedColumn)
		}
	}
	for _, r := range resolved {
		log.Debugf("applying filter: col=%d query=%q", r.Col, r.Query)
		target.Filter(r.Query, r.Col)
	}
	return nil
}
