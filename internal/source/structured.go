// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/driller"
	"github.com/tfctl/colfilter/internal/log"
)

var (
	// ErrInvalidJSON is returned for malformed JSON sources.
	ErrInvalidJSON = errors.New("invalid json")
	// ErrNotList is returned when the records are not a list.
	ErrNotList = errors.New("records are not a list")
)

func parseJSON(r io.Reader, specs columns.List, root string) (*Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}
	if !gjson.ValidBytes(b) {
		return nil, ErrInvalidJSON
	}
	return fromRecords(gjson.ParseBytes(b), specs, root, nil)
}

// parseYAML converts the document to JSON and parses that. The key order of
// the first record is taken from the yaml node tree, since decoded maps do
// not keep it.
func parseYAML(r io.Reader, specs columns.List, root string) (*Data, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}

	var v any
	if err := doc.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert yaml: %w", err)
	}

	return fromRecords(gjson.ParseBytes(b), specs, root, firstKeys(&doc, root))
}

// firstKeys returns the keys of the first mapping in the record list, in
// document order.
func firstKeys(doc *yaml.Node, root string) []string {
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if root != "" {
		// Roots are plain dotted keys here; indexed roots fall back to
		// sorted keys.
		for _, seg := range strings.Split(root, ".") {
			n = mappingValue(n, seg)
			if n == nil {
				return nil
			}
		}
	}
	if n.Kind != yaml.SequenceNode || len(n.Content) == 0 || n.Content[0].Kind != yaml.MappingNode {
		return nil
	}

	m := n.Content[0]
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// fromRecords builds a table from a record list. keys, when set, orders the
// columns of object records.
func fromRecords(doc gjson.Result, specs columns.List, root string, keys []string) (*Data, error) {
	list := doc
	if root != "" {
		list = driller.Drill(doc, root)
	}
	if !list.IsArray() {
		return nil, ErrNotList
	}
	records := list.Array()
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	if records[0].IsArray() {
		return fromRows(records, specs), nil
	}

	cols := specs
	if len(cols) == 0 {
		if keys == nil {
			records[0].ForEach(func(k, _ gjson.Result) bool {
				keys = append(keys, k.String())
				return true
			})
		}
		for _, k := range keys {
			cols = append(cols, columns.Column{Key: k, Name: k})
		}
	}
	log.Debugf("record columns: %v", cols.Names())

	data := &Data{Columns: cols}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = driller.Text(driller.Drill(rec, c.Key))
		}
		data.Records = append(data.Records, row)
	}
	shape(data)

	return data, nil
}

// fromRows handles a list of lists whose first entry is the header.
func fromRows(records []gjson.Result, specs columns.List) *Data {
	var header []string
	for _, h := range records[0].Array() {
		header = append(header, h.String())
	}

	data := &Data{Columns: merge(columns.FromHeader(header), specs)}
	for _, rec := range records[1:] {
		var row []string
		for _, v := range rec.Array() {
			row = append(row, driller.Text(v))
		}
		data.Records = append(data.Records, row)
	}
	shape(data)

	return data
}
