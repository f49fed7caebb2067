// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source loads a table from a local file, stdin ("-") or S3
// (s3://bucket/key). CSV and TSV files carry their header in the first
// record. JSON and YAML files hold a list of records: either lists, whose
// first entry is the header, or objects, whose columns come from --columns
// or from the keys of the first object.
package source
