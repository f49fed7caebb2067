// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tfctl/colfilter/internal/log"
)

// Null is the sentinel query that selects empty cells.
const Null = `\NULL`

// Predicate reports whether a cell's text matches a compiled query.
type Predicate func(text string) bool

// Func is a caller supplied matcher. It receives the cell text and the raw,
// untranslated query.
type Func func(text string, query string) bool

// Pattern returns the regular expression source a query translates to. The
// null sentinel translates to an anchored whitespace pattern.
func Pattern(query string) string {
	if query == Null {
		return `^\s*$`
	}

	// Only the first '*' is a wildcard. QuoteMeta escapes everything else,
	// trailing asterisks included.
	head, tail, found := strings.Cut(validUTF8(query), "*")
	body := regexp.QuoteMeta(head)
	if found {
		body += ".*" + regexp.QuoteMeta(tail)
	}

	return ".*" + body + ".*"
}

// Compile translates query into a Predicate. Compile never fails: every
// character that could make the pattern invalid is escaped, and bytes that
// are not valid UTF-8 become U+FFFD, which is what the matcher reads them as
// in the text.
func Compile(query string, ignoreCase bool) Predicate {
	if query == Null {
		return func(text string) bool {
			return strings.TrimSpace(text) == ""
		}
	}

	pattern := Pattern(query)
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re := regexp.MustCompile(pattern)
	log.Tracef("query compiled: query=%q pattern=%s", query, pattern)

	return re.MatchString
}

// validUTF8 replaces every invalid byte of s with U+FFFD, one for one.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.Map(func(r rune) rune { return r }, s)
}

// Bind adapts a Func to a Predicate for one query.
func Bind(fn Func, query string) Predicate {
	return func(text string) bool {
		return fn(text, query)
	}
}
