// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package columns parses column specs. A spec is the text of a header cell
// or one entry of the --columns flag:
//
//	[!|+]key[:title[:transform]]
//
// A leading '!' excludes the column from filtering and a leading '+' adds it
// to the filter allow-list. The title is shown on the column's popover. The
// transform reshapes each value before it is displayed and matched:
//
//	u, l   upper or lower case (the last one wins)
//	t      RFC3339 timestamp to local time
//	T      RFC3339 timestamp to "3 hours ago"
//	N, -N  truncate to N characters, or elide the middle down to N
package columns
