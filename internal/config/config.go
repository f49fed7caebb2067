// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/colfilter/internal/log"
)

// FileName is the config file looked for in the user config directory.
const FileName = "colfilter.yaml"

var (
	// ErrNotFound is returned when a key is absent.
	ErrNotFound = errors.New("config key not found")
	// ErrWrongType is returned when a key holds a value of another type.
	ErrWrongType = errors.New("config value has the wrong type")
	// ErrNoFile is returned when no config file exists.
	ErrNoFile = errors.New("no config file found")
)

// Type is the loaded configuration.
type Type struct {
	// Source is the path of the YAML file loaded.
	Source string
	// Namespace is tried as a key prefix before the bare key.
	Namespace string
	Data      map[string]any
}

// Config is the process-wide configuration. Getters load it lazily.
var Config Type

// Load reads the config file and replaces Config. An explicit path wins over
// COLFILTER_CFG_FILE and the user config directory. The namespace survives a
// reload.
func Load(cfgFilePath ...string) (Type, error) {
	path := ""
	if len(cfgFilePath) > 0 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else {
		p, err := File()
		if err != nil {
			return Type{}, err
		}
		path = p
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("failed to read config: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	Config = Type{Source: path, Namespace: Config.Namespace, Data: data}
	log.Debugf("config loaded: source=%s keys=%d", path, len(data))

	return Config, nil
}

// SetNamespace sets the key prefix tried first by every getter.
func SetNamespace(ns string) {
	Config.Namespace = ns
}

// File returns the config file path. COLFILTER_CFG_FILE must name an existing
// file when set.
func File() (string, error) {
	if p := os.Getenv("COLFILTER_CFG_FILE"); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found at COLFILTER_CFG_FILE path: %s", p)
		}
		if info.IsDir() {
			return "", fmt.Errorf("COLFILTER_CFG_FILE points to a directory: %s", p)
		}
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoFile, err)
	}
	p := filepath.Join(dir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, nil
	}
	return "", ErrNoFile
}

// lookup finds key, preferring the namespaced form.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load(Config.Source)
	}

	candidates := []string{key}
	if Config.Namespace != "" {
		candidates = []string{Config.Namespace + "." + key, key}
	}

	for _, c := range candidates {
		if v, ok := walk(Config.Data, c); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

func walk(data map[string]any, key string) (any, bool) {
	var current any = data
	for _, k := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[k]; !ok {
			return nil, false
		}
	}
	return current, true
}

// getter returns the typed value of key, or the single default when the key
// is absent.
func getter[T any](key string, convert func(any) (T, bool), defaultValue []T) (T, error) {
	var zero T
	v, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}
	t, ok := convert(v)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongType, key, v)
	}
	return t, nil
}

// GetString returns the string at key.
func GetString(key string, defaultValue ...string) (string, error) {
	return getter(key, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	}, defaultValue)
}

// GetInt returns the integer at key.
func GetInt(key string, defaultValue ...int) (int, error) {
	return getter(key, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		default:
			return 0, false
		}
	}, defaultValue)
}

// GetBool returns the boolean at key.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return getter(key, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	}, defaultValue)
}

// GetStringSlice returns the string list at key.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return getter(key, func(v any) ([]string, bool) {
		items, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}, defaultValue)
}
