// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key with an optional [n] or [*].
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_ -]+)(\[(\d+|\*)?\])?$`)

// Drill follows path through record. A segment may index an array with [n];
// an unindexed single-element array is unwrapped, any other array is
// returned whole. An invalid path or index yields a non-existent result.
func Drill(record gjson.Result, path string) gjson.Result {
	current := record

	for _, p := range strings.Split(path, ".") {
		m := segmentRegex.FindStringSubmatch(p)
		if m == nil {
			return gjson.Result{}
		}

		index := -1
		if m[3] != "" && m[3] != "*" {
			i, err := strconv.Atoi(m[3])
			if err != nil {
				return gjson.Result{}
			}
			index = i
		}

		val := current.Get(gjson.Escape(m[1]))
		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
			case index < len(arr):
				val = arr[index]
			default:
				return gjson.Result{}
			}
		}

		current = val
	}

	return current
}

// Text renders a drilled value as cell text. Missing and null values are
// empty, arrays of scalars are joined with ", " and objects keep their raw
// JSON.
func Text(r gjson.Result) string {
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return ""
	case r.IsArray():
		items := r.Array()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if item.IsObject() || item.IsArray() {
				return r.Raw
			}
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case r.IsObject():
		return r.Raw
	default:
		return r.String()
	}
}
