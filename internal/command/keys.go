// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/meta"
	"github.com/tfctl/colfilter/internal/output"
	"github.com/tfctl/colfilter/internal/query"
	"github.com/tfctl/colfilter/internal/source"
)

// keysHeader names the columns of the keys listing.
var keysHeader = []string{"column", "key", "query", "pattern"}

// keysCommandAction lists, for each filterable column, the key its query is
// saved under, the saved query and the pattern it translates to.
func keysCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	s, err := loadSession(ctx, cmd)
	if err != nil {
		return err
	}
	opts, err := filterOptions(cmd, s)
	if err != nil {
		return err
	}
	ctrl := filterable.New(s.table, opts...)

	names := s.data.Columns.Names()
	var records [][]string
	for _, col := range ctrl.Columns() {
		key := ctrl.Key(col)
		q, pattern := "", ""
		if s.store != nil {
			q = s.store.Get(key)
		}
		if q != "" {
			pattern = query.Pattern(q)
		}
		records = append(records, []string{names[col], key, q, pattern})
	}

	listing := grid.New(&source.Data{
		ID:      "keys",
		Columns: columns.FromHeader(keysHeader),
		Records: records,
	})

	o := outputOptions(cmd)
	o.Visible = grid.ShowAll
	return output.Spit(writer(cmd), listing, o)
}

func keysCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "show the persisted filter keys of a table",
		UsageText: "colfilter keys [source] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewTableFlags("keys", meta.Config.Source), NewOutputFlags("keys", meta.Config.Source)...),
		Action: keysCommandAction,
	}
}
