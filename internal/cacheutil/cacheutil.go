// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/colfilter/internal/log"
)

// Entry is a state file on disk. Key is the clear-text key and Name the
// hashed file name it is stored under.
type Entry struct {
	Key  string
	Name string
	Path string
	Data []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. COLFILTER_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/colfilter
//
// Returns ("", false) when no base can be resolved, which disables the cache.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("COLFILTER_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "colfilter"), true
	}
	return "", false
}

// Enabled returns true unless COLFILTER_CACHE is "0" or "false".
func Enabled() bool {
	enabled := os.Getenv("COLFILTER_CACHE")
	return enabled != "0" && enabled != "false"
}

// EntryPath returns where key lives beneath kind and whether a file exists
// there.
func EntryPath(kind string, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, kind, encodeKey(key))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Read returns the entry stored for key, trimmed of surrounding whitespace.
func Read(kind string, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(kind, key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.WithError(err).Warnf("unreadable cache entry %s", p)
		return nil, false
	}
	log.Debugf("cache hit: kind=%s key=%s", kind, key)
	return &Entry{
		Key:  key,
		Name: encodeKey(key),
		Path: p,
		Data: bytes.TrimSpace(b),
	}, true
}

// Write stores data for key beneath kind, creating directories as needed.
// Empty data removes the entry.
func Write(kind string, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	dir := filepath.Join(base, kind)
	p := filepath.Join(dir, encodeKey(key))
	if len(bytes.TrimSpace(data)) == 0 {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache entry: %w", err)
		}
		log.Debugf("cache remove: kind=%s key=%s", kind, key)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: kind=%s key=%s", kind, key)
	return nil
}

// Purge removes entries not touched for longer than maxAge. A non-positive
// maxAge disables purging.
func Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		log.Debug("cache purge disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		} else {
			log.Debugf("removed cache file %s", path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey hashes key into a file name safe on every platform.
func encodeKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
