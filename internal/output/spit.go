// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/colfilter/internal/config"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/log"
)

// MatchKey is the extra field carrying a row's mark when Marks is set.
const MatchKey = "_match"

// ErrUnknownOutput is returned for an unsupported output format.
var ErrUnknownOutput = errors.New("unknown output format")

// Options shape what Spit writes.
type Options struct {
	// Format is text, json or yaml.
	Format  string
	Visible grid.Visible
	Color   bool
	Titles  bool
	Padding int
	// Marks adds the row mark as a trailing column.
	Marks bool
	// Footer is printed after a text table.
	Footer string
}

// Spit writes the rows of t that o.Visible keeps. If w is nil, os.Stdout is
// used.
func Spit(w io.Writer, t *grid.Table, o Options) error {
	if w == nil {
		w = os.Stdout
	}
	rows := t.Select(o.Visible)
	log.Debugf("spit: format=%s rows=%d of %d", o.Format, len(rows), len(t.GridRows()))

	switch o.Format {
	case "json":
		return writeJSON(w, records(t, rows, o.Marks))
	case "yaml":
		b, err := yaml.Marshal(records(t, rows, o.Marks))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		TableWriter(w, t, rows, o)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, o.Format)
	}
}

// records keys every row by column name, keeping column order.
func records(t *grid.Table, rows []*grid.Row, marks bool) []yaml.MapSlice {
	names := t.Names()
	out := make([]yaml.MapSlice, 0, len(rows))
	for _, r := range rows {
		rec := make(yaml.MapSlice, 0, len(names)+1)
		for i, v := range r.Values(len(names)) {
			rec = append(rec, yaml.MapItem{Key: names[i], Value: v})
		}
		if marks {
			rec = append(rec, yaml.MapItem{Key: MatchKey, Value: r.Mark().String()})
		}
		out = append(out, rec)
	}
	return out
}

// writeJSON emits the records as an array of objects in column order, which
// encoding/json would sort.
func writeJSON(w io.Writer, recs []yaml.MapSlice) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range recs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, item := range rec {
			if j > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(item.Key)
			if err != nil {
				return fmt.Errorf("failed to marshal json: %w", err)
			}
			v, err := json.Marshal(item.Value)
			if err != nil {
				return fmt.Errorf("failed to marshal json: %w", err)
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// TableWriter renders rows as a borderless table. Mismatched rows are drawn
// in the mismatch color when o.Color is set.
func TableWriter(w io.Writer, t *grid.Table, rows []*grid.Row, o Options) {
	if len(rows) == 0 {
		if o.Footer != "" {
			fmt.Fprintln(w, o.Footer)
		}
		return
	}

	var (
		headerStyle   = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle     = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		matchStyle    = cellStyle
		mismatchStyle = cellStyle
	)
	if o.Color {
		headerColor, matchColor, mismatchColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		matchStyle = matchStyle.Foreground(matchColor)
		mismatchStyle = mismatchStyle.Foreground(mismatchColor).Faint(true)
	}

	width := t.Width()
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		vals := r.Values(width)
		if o.Marks {
			vals = append(vals, r.Mark().String())
		}
		body = append(body, vals)
	}

	tbl := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case rows[row].Mark() == grid.Mismatched:
				style = mismatchStyle
			case rows[row].Mark() == grid.Matched:
				style = matchStyle
			default:
				style = cellStyle
			}
			if col > 0 {
				style = style.PaddingLeft(o.Padding)
			}
			return style
		}).
		Headers().
		Rows(body...)

	if o.Titles {
		headers := t.Names()
		if o.Marks {
			headers = append(headers, MatchKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		tbl = tbl.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, tbl)

	if o.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(o.Footer))
	}
}

// Summary describes the match state, e.g. "2 of 1,204 rows match, 1 filter".
func Summary(st filterable.Stats) string {
	return fmt.Sprintf("%s of %s %s match, %s",
		humanize.Comma(int64(st.Matched)),
		humanize.Comma(int64(st.Rows)),
		english.PluralWord(st.Rows, "row", ""),
		english.Plural(st.Filters, "filter", ""))
}

// getColors returns the header, match and mismatch colors. Configured
// colors win; otherwise the defaults follow the terminal background.
func getColors(key string) (header, match, mismatch color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve(key+".title", "#b08800", "#f6be00")
	match = resolve(key+".match", "#0088a0", "#00c8f0")
	mismatch = resolve(key+".mismatch", "#999999", "#666666")

	return
}
