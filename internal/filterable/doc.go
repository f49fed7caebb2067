// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filterable attaches per-column text filters to a table and keeps
// the match state of every cell and row consistent while several column
// filters are active at once.
//
// The package owns state only. The table, its rows and cells, and the filter
// popovers are presentation elements supplied by the caller through the Table,
// RowNode, CellNode and Surface interfaces. State flows one way: a filter
// computes a cell's match flag, the row aggregates its cells, and both push
// the result into their nodes. Nothing read back from a node feeds the match
// computation, except the cell text, which is read fresh on every filter.
//
// Lifecycle:
//
//   - New resolves which columns are filterable. The decision combines the
//     allow-list (WithOnlyColumns), the deny-list (WithIgnoreColumns) and the
//     per-header Ignore/Filter markers, and never changes afterwards.
//   - Init marks the table, creates one Surface per filterable column and
//     applies any query found in the persisted-state store.
//   - Filter sweeps every row for one column. Rows are built on first use.
//   - Teardown clears every marker and releases rows and surfaces.
//
// Filters combine: a row matches only while every filtered column matches.
// CollectSuggestions therefore returns values from rows that pass all active
// filters, which is what an autocomplete for another column should offer.
//
// Everything runs synchronously on the caller's goroutine. A hook that starts
// another Filter while a sweep is in progress gets undefined results.
package filterable
