// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/meta"
	"github.com/tfctl/colfilter/internal/output"
)

// printCommandAction is the action handler for the "print" subcommand. Saved
// filters are applied first, then --filter on top; nothing is saved.
func printCommandAction(ctx context.Context, cmd *cli.Command) error {
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
	ctrl.Init()
	defer ctrl.Teardown()

	if err := applyFilterFlag(cmd, ctrl, s.data.Columns, nil); err != nil {
		return err
	}

	o := outputOptions(cmd)
	if o.Titles {
		o.Footer = output.Summary(ctrl.Stats())
	}

	return output.Spit(writer(cmd), s.table, o)
}

// printCommandBuilder constructs the cli.Command for "print".
func printCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "filter a table and print the rows",
		UsageText: "colfilter print [source] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewTableFlags("print", meta.Config.Source), NewOutputFlags("print", meta.Config.Source)...),
		Action: printCommandAction,
	}
}
