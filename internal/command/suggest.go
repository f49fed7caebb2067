// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/meta"
)

// suggestCommandAction prints the values a column's popover would offer
// under the saved and --filter filters, one per line.
func suggestCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	ref := cmd.Args().Get(1)
	if ref == "" {
		return ErrMissingColumn
	}

	s, err := loadSession(ctx, cmd)
	if err != nil {
		return err
	}
	col, err := s.data.Columns.Index(ref)
	if err != nil {
		return err
	}

	opts, err := filterOptions(cmd, s)
	if err != nil {
		return err
	}
	ctrl := filterable.New(s.table, opts...)
	ctrl.Init()
	defer ctrl.Teardown()

	if err := applyFilterFlag(cmd, ctrl, s.data.Columns, nil); err != nil {
		return err
	}

	w := writer(cmd)
	for _, v := range ctrl.CollectSuggestions(col) {
		fmt.Fprintln(w, v)
	}
	return nil
}

func suggestCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "list the suggestions for a column",
		UsageText: "colfilter suggest <source> <column> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewTableFlags("suggest", meta.Config.Source),
		Action: suggestCommandAction,
	}
}
