// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses --filter expressions and applies them to a
// filterable table.
//
// An expression is column=query. The column is a header name (compared
// without case) or a zero-based index. The query uses the column filter
// syntax: a '*' wildcard and the \NULL sentinel for empty cells. An empty
// query clears the column.
//
// Examples:
//
//   - "name=joh*" : names containing "joh" followed by anything
//   - "0=\NULL" : rows whose first column is blank
//   - "city=" : clear any filter on city
//
// Expressions are separated by a comma. Set COLFILTER_FILTER_DELIM to use
// another delimiter when queries contain commas. Malformed expressions are
// logged and skipped.
package filters
