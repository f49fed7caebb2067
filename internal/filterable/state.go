// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterable

import "strconv"

// StateStore persists committed queries outside the controller, keyed by
// FilterKey. Get returns "" for a missing key.
type StateStore interface {
	Get(key string) string
	Set(key string, value string)
	Remove(key string)
	// Subscribe registers fn to run after every state change and returns a
	// function that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// FilterKey names the persisted state of a column. Tables without an id
// share the "filter__<col>" namespace.
func FilterKey(tableID string, col int) string {
	return "filter_" + tableID + "_" + strconv.Itoa(col)
}
