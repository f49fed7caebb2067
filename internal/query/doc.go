// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package query turns a raw column filter query into a match predicate.
//
// Queries are simplified globs. Every regular expression metacharacter is
// taken literally except the first '*', which matches any run of characters.
// Later asterisks are literal. The translated pattern is searched anywhere in
// the cell text, so "joh" matches "John" and "Big John" alike when case is
// ignored.
//
// Examples:
//
//   - "a*c"   : matches "abc", "ac" and "xabcx" but not "ab"
//   - "a.b"   : matches "a.b" only, the dot is not a wildcard
//   - "a*b*c" : matches "aXXb*c", the second '*' is a literal asterisk
//   - "\NULL" : matches empty or whitespace only text
//
// A caller supplied Func bypasses the translation entirely.
package query
