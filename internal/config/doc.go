// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads colfilter's user configuration, a YAML document
// named colfilter.yaml in the user's configuration directory (see
// os.UserConfigDir) or the file COLFILTER_CFG_FILE points to.
//
// Keys are dotted paths. When a Namespace is set, "<namespace>.<key>" is
// tried before the bare key, so per-command settings can override global
// ones:
//
//	ignore-case: true
//	view:
//	  title: "Filter %field%"
//	colors:
//	  match: "#00c8f0"
package config
