// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/tfctl/colfilter/internal/columns"
)

func parseDelimited(r io.Reader, comma rune, specs columns.List) (*Data, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	data := &Data{Columns: merge(columns.FromHeader(header), specs)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(data.Records)+1, err)
		}
		data.Records = append(data.Records, rec)
	}
	shape(data)

	return data, nil
}
