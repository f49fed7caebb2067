// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/aws"
	"github.com/tfctl/colfilter/internal/cacheutil"
	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/config"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/filters"
	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/hashstate"
	"github.com/tfctl/colfilter/internal/log"
	"github.com/tfctl/colfilter/internal/meta"
	"github.com/tfctl/colfilter/internal/output"
	"github.com/tfctl/colfilter/internal/query"
	"github.com/tfctl/colfilter/internal/source"
)

// defaultPurgeHours is how long persisted filters live without a config
// override.
const defaultPurgeHours = 24 * 7

// ErrMissingColumn is returned when suggest is run without a column.
var ErrMissingColumn = errors.New("missing column argument")

// session is a loaded table and, unless --no-hash, its persisted filters.
type session struct {
	ref   string
	data  *source.Data
	table *grid.Table
	store *hashstate.Store
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer returns where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// loadSession reads the table named by the first argument. No argument, or
// "-", reads stdin.
func loadSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	ref := cmd.Args().First()
	if ref == "" {
		ref = source.Stdin
	}

	var opts []source.Option
	if name := cmd.String("format"); name != "" {
		f, err := source.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, source.WithFormat(f))
	}
	if spec := cmd.String("columns"); spec != "" {
		var cols columns.List
		if err := cols.Set(spec); err != nil {
			return nil, fmt.Errorf("invalid --columns: %w", err)
		}
		opts = append(opts, source.WithColumns(cols))
	}
	if root := cmd.String("root"); root != "" {
		opts = append(opts, source.WithRoot(root))
	}
	if r := cmd.Root().Reader; r != nil {
		opts = append(opts, source.WithStdin(r))
	}
	opts = append(opts, source.WithS3Options(s3Options(cmd)...))

	data, err := source.Load(ctx, ref, opts...)
	if err != nil {
		return nil, err
	}
	if id := cmd.String("id"); id != "" {
		data.ID = id
	}

	s := &session{ref: ref, data: data, table: grid.New(data)}
	if !cmd.Bool("no-hash") {
		if s.store, err = hashstate.Load(data.ID); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func s3Options(cmd *cli.Command) (opts []aws.Option) {
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		opts = append(opts, aws.WithRegion(r))
	}
	if e := cmd.String("endpoint"); e != "" {
		opts = append(opts, aws.WithEndpoint(e))
	}
	return
}

// filterOptions turns the table flags into controller options. --ignore and
// --only fall back to the config file lists.
func filterOptions(cmd *cli.Command, s *session) ([]filterable.Option, error) {
	ignoreCase := !cmd.Bool("case-sensitive")
	opts := []filterable.Option{
		filterable.WithIgnoreCase(ignoreCase),
		filterable.WithHash(s.store != nil),
	}

	ignore, err := columnRefs(cmd, "ignore", s.data.Columns)
	if err != nil {
		return nil, err
	}
	opts = append(opts, filterable.WithIgnoreColumns(ignore...))

	if cmd.IsSet("only") || hasConfigList("only") {
		only, err := columnRefs(cmd, "only", s.data.Columns)
		if err != nil {
			return nil, err
		}
		if len(only) > 0 || cmd.IsSet("only") {
			opts = append(opts, filterable.WithOnlyColumns(only...))
		}
	}

	if s.store != nil {
		opts = append(opts, filterable.WithStateStore(s.store))
	}
	if tpl := cmd.String("title"); tpl != "" {
		opts = append(opts, filterable.WithTitleTemplate(tpl))
	}
	if cmd.Bool("exact") {
		opts = append(opts, filterable.WithIsMatch(exactMatch(ignoreCase)))
	}

	var start time.Time
	opts = append(opts,
		filterable.WithBeforeFilter(func(t filterable.Table, col int, q string) {
			start = time.Now()
			log.Tracef("filter start: table=%q col=%d query=%q", t.ID(), col, q)
		}),
		filterable.WithAfterFilter(func(t filterable.Table, col int, q string) {
			log.Debugf("filter done: table=%q col=%d query=%q elapsed=%s", t.ID(), col, q, time.Since(start))
		}),
	)

	return opts, nil
}

// columnRefs resolves a comma separated list of column names or indices.
// Config file lists apply to every table, so their unknown columns are
// skipped.
func columnRefs(cmd *cli.Command, name string, cols columns.List) ([]int, error) {
	if !cmd.IsSet(name) {
		refs, _ := config.GetStringSlice(name)
		var idx []int
		for _, r := range refs {
			if i, err := cols.Index(r); err == nil {
				idx = append(idx, i)
			}
		}
		return idx, nil
	}

	var refs []string
	for _, r := range strings.Split(cmd.String(name), ",") {
		if r = strings.TrimSpace(r); r != "" {
			refs = append(refs, r)
		}
	}
	idx, err := cols.Indices(refs)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return idx, nil
}

func hasConfigList(key string) bool {
	_, err := config.GetStringSlice(key)
	return err == nil
}

// exactMatch compares the whole cell text with the query. The null sentinel
// keeps its meaning.
func exactMatch(ignoreCase bool) query.Func {
	return func(text string, q string) bool {
		if q == query.Null {
			return strings.TrimSpace(text) == ""
		}
		if ignoreCase {
			return strings.EqualFold(text, q)
		}
		return text == q
	}
}

// applyFilterFlag runs the --filter expressions through ctrl. When persist
// is set the queries are also written to the store, which refreshes any
// popover.
func applyFilterFlag(cmd *cli.Command, ctrl *filterable.Controller, cols columns.List, persist *hashstate.Store) error {
	resolved, err := filters.Resolve(filters.BuildFilters(cmd.String("filter")), cols)
	if err != nil {
		return err
	}
	if err := filters.Apply(ctrl, resolved); err != nil {
		return err
	}
	if persist == nil {
		return nil
	}
	for _, r := range resolved {
		persist.Set(ctrl.Key(r.Col), r.Query)
	}
	return nil
}

// outputOptions reads the output flags.
func outputOptions(cmd *cli.Command) output.Options {
	visible, _ := grid.ParseVisible(cmd.String("mismatch"))
	return output.Options{
		Format:  cmd.String("output"),
		Visible: visible,
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
		Marks:   cmd.Bool("marks"),
	}
}

// purgeState drops persisted filters older than the configured purge-hours.
func purgeState() {
	hours, _ := config.GetInt("purge-hours", defaultPurgeHours)
	if err := cacheutil.Purge(time.Duration(hours) * time.Hour); err != nil {
		log.WithError(err).Warnf("failed to purge persisted filters")
	}
}
