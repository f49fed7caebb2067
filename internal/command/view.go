// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/meta"
	"github.com/tfctl/colfilter/internal/ui"
)

// viewCommandAction is the action handler for the "view" subcommand. It
// opens the interactive viewer, or prints when stdout is not a terminal.
func viewCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if !m.Interactive {
		log.Debug("stdout is not a terminal, printing instead")
		return printCommandAction(ctx, cmd)
	}

	s, err := loadSession(ctx, cmd)
	if err != nil {
		return err
	}

	opts, err := filterOptions(cmd, s)
	if err != nil {
		return err
	}

	var history ui.History
	if s.store != nil {
		history = s.store
	}

	model := ui.New(s.table, ui.Options{
		Filter:         opts,
		History:        history,
		HideMismatched: cmd.String("mismatch") == "hide",
		Title:          s.ref,
	})
	ctrl := model.Controller()
	defer ctrl.Teardown()

	if err := applyFilterFlag(cmd, ctrl, s.data.Columns, s.store); err != nil {
		return err
	}

	if err := ui.Run(model, tea.WithAltScreen(), tea.WithContext(ctx)); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Save(s.data.ID); err != nil {
			log.WithError(err).Warnf("failed to save filters for %q", s.data.ID)
		}
		purgeState()
	}

	return nil
}

// viewCommandBuilder constructs the cli.Command for "view", wiring metadata,
// flags, and action handler.
func viewCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "filter a table interactively",
		UsageText: "colfilter view [source] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewTableFlags("view", meta.Config.Source), NewOutputFlags("view", meta.Config.Source)...),
		Action: viewCommandAction,
	}
}
