// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hashstate

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/tfctl/colfilter/internal/cacheutil"
	"github.com/tfctl/colfilter/internal/log"
)

// cacheKind is the cache subdirectory fragments are saved under.
const cacheKind = "hash"

// ErrBadFragment is returned when a fragment cannot be decoded.
var ErrBadFragment = errors.New("malformed state fragment")

// Store is an in-memory fragment with history. The zero value is not usable;
// call New or Load.
type Store struct {
	mu      sync.Mutex
	history []map[string]string
	pos     int

	subs   map[int]func()
	nextID int
}

// New returns a store whose initial state is decoded from fragment. A
// leading '#' is ignored.
func New(fragment string) (*Store, error) {
	state, err := Decode(fragment)
	if err != nil {
		return nil, err
	}
	return &Store{
		history: []map[string]string{state},
		subs:    make(map[int]func()),
	}, nil
}

// Load restores the fragment saved for id. A missing entry yields an empty
// store.
func Load(id string) (*Store, error) {
	fragment := ""
	if e, ok := cacheutil.Read(cacheKind, id); ok {
		fragment = string(e.Data)
	}
	s, err := New(fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %q: %w", id, err)
	}
	return s, nil
}

// Save writes the current fragment for id. An empty state removes the saved
// entry.
func (s *Store) Save(id string) error {
	return cacheutil.Write(cacheKind, id, []byte(s.Fragment()))
}

// Decode parses a fragment into its key/value pairs. Repeated keys keep the
// last value.
func Decode(fragment string) (map[string]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFragment, err)
	}
	state := make(map[string]string, len(values))
	for k, v := range values {
		if k == "" || len(v) == 0 {
			continue
		}
		state[k] = v[len(v)-1]
	}
	return state, nil
}

// Encode renders state as a fragment with keys in sorted order.
func Encode(state map[string]string) string {
	values := make(url.Values, len(state))
	for k, v := range state {
		values.Set(k, v)
	}
	return values.Encode()
}

// Fragment returns the current state encoded.
func (s *Store) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.history[s.pos])
}

// State returns a copy of the current key/value pairs.
func (s *Store) State() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.history[s.pos])
}

// Get returns the value of key, "" when unset.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.pos][key]
}

// Set stores value under key. An empty value removes the key.
func (s *Store) Set(key string, value string) {
	s.push(func(state map[string]string) {
		if value == "" {
			delete(state, key)
			return
		}
		state[key] = value
	})
}

// Remove deletes key.
func (s *Store) Remove(key string) {
	s.push(func(state map[string]string) {
		delete(state, key)
	})
}

// Replace swaps the whole state, as when a new fragment is navigated to.
func (s *Store) Replace(fragment string) error {
	next, err := Decode(fragment)
	if err != nil {
		return err
	}
	s.push(func(state map[string]string) {
		clear(state)
		maps.Copy(state, next)
	})
	return nil
}

// push applies edit to a copy of the current state. If anything changed,
// forward history is dropped, the copy becomes current and subscribers run.
func (s *Store) push(edit func(state map[string]string)) {
	s.mu.Lock()
	next := maps.Clone(s.history[s.pos])
	if next == nil {
		next = make(map[string]string)
	}
	edit(next)
	if maps.Equal(next, s.history[s.pos]) {
		s.mu.Unlock()
		return
	}
	s.history = append(s.history[:s.pos+1], next)
	s.pos++
	log.Debugf("state push: pos=%d fragment=%s", s.pos, Encode(next))
	s.mu.Unlock()

	s.notify()
}

// Back moves to the previous state. It reports false at the oldest entry.
func (s *Store) Back() bool {
	return s.move(-1)
}

// Forward moves to the next state. It reports false at the newest entry.
func (s *Store) Forward() bool {
	return s.move(1)
}

func (s *Store) move(step int) bool {
	s.mu.Lock()
	to := s.pos + step
	if to < 0 || to >= len(s.history) {
		s.mu.Unlock()
		return false
	}
	s.pos = to
	log.Debugf("state move: pos=%d", s.pos)
	s.mu.Unlock()

	s.notify()
	return true
}

// Position returns the current history index and the history length.
func (s *Store) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, len(s.history)
}

// Subscribe registers fn to run after every change. Subscribers run on the
// goroutine that made the change, without the store lock held.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	// Subscription order.
	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.subs[id]
		s.mu.Unlock()
		if ok {
			fn()
		}
	}
}
