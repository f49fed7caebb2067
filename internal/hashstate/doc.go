// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package hashstate keeps filter queries in a location-fragment style
// key/value string ("filter_people_0=joh%2A&filter_people_2=boston") with a
// back/forward history. Every Set or Remove that changes the state pushes a
// new history entry and notifies subscribers, the way a browser fires
// hashchange. A Store satisfies filterable.StateStore and can be saved to and
// loaded from the cache directory so filters survive between runs.
//
// A Store may be shared between goroutines, e.g. a running viewer and the
// caller that saves it. Subscribers run on the goroutine that made the change
// with the lock released, so they may read and write the store.
package hashstate
