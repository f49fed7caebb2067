// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/colfilter/internal/config"
	"github.com/tfctl/colfilter/internal/filterable"
	"github.com/tfctl/colfilter/internal/filters"
	"github.com/tfctl/colfilter/internal/hashstate"
)

const people = "testdata/people.csv"

// isolate points the cache and config lookups at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("COLFILTER_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, env := range []string{"COLFILTER_CFG_FILE", "COLFILTER_CASE_SENSITIVE", "COLFILTER_NO_HASH", "COLFILTER_FILTER_DELIM"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"colfilter"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	// Never start the viewer, even when the tests run on a terminal.
	for _, cmd := range app.Commands {
		m := GetMeta(cmd)
		m.Interactive = false
		cmd.Metadata["meta"] = m
	}

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(stdin)

	err = app.Run(context.Background(), args)
	return out.String(), err
}

func TestPrint(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "glob",
			args: []string{"print", "-o", "json", "-f", "name=joh*", people},
			want: `[{"name":"John","age":"31","city":"Boston"},{"name":"Johnny","age":"22","city":"Austin"}]` + "\n",
		},
		{
			name: "combined columns",
			args: []string{"print", "-o", "json", "-f", "name=joh*,city=bos", people},
			want: `[{"name":"John","age":"31","city":"Boston"}]` + "\n",
		},
		{
			name: "null",
			args: []string{"print", "-o", "json", "-f", `city=\NULL`, people},
			want: `[{"name":"Ann","age":"29","city":""}]` + "\n",
		},
		{
			name: "only mismatches with marks",
			args: []string{"print", "-o", "json", "--mismatch", "only", "--marks", "-f", "city=austin", people},
			want: `[{"name":"John","age":"31","city":"Boston","_match":"mismatch"},` +
				`{"name":"Mark","age":"45","city":"Boston","_match":"mismatch"},` +
				`{"name":"Ann","age":"29","city":"","_match":"mismatch"}]` + "\n",
		},
		{
			name: "exact",
			args: []string{"print", "-o", "json", "-x", "-f", "name=JOHN", people},
			want: `[{"name":"John","age":"31","city":"Boston"}]` + "\n",
		},
		{
			name: "case sensitive",
			args: []string{"print", "-o", "json", "-C", "-f", "name=john", people},
			want: "[]\n",
		},
		{
			name: "no filter keeps every row",
			args: []string{"print", "-o", "json", "--columns", "name", people},
			want: `[{"name":"John","age":"31","city":"Boston"},{"name":"Johnny","age":"22","city":"Austin"},` +
				`{"name":"Mark","age":"45","city":"Boston"},{"name":"Ann","age":"29","city":""}]` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintStdin(t *testing.T) {
	isolate(t)

	got, err := run(t, "a,b\n1,x\n2,y\n", "print", "--format", "csv", "-o", "json", "-f", "b=y")
	require.NoError(t, err)
	assert.Equal(t, `[{"a":"2","b":"y"}]`+"\n", got)
}

func TestPrintText(t *testing.T) {
	isolate(t)

	got, err := run(t, "", "print", "-t", "-f", "name=mark", people)
	require.NoError(t, err)
	assert.Contains(t, got, "Mark")
	assert.NotContains(t, got, "Johnny")
	assert.Contains(t, got, "1 of 4 rows match, 1 filter")
}

func TestPrintErrors(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "print", "-f", "age=3*", people)
	assert.ErrorIs(t, err, filters.ErrExcludedColumn, "header marks age as ignored")

	_, err = run(t, "", "print", "--ignore", "city", "-f", "city=boston", people)
	assert.ErrorIs(t, err, filters.ErrExcludedColumn)

	_, err = run(t, "", "print", "--only", "city", "-f", "name=john", people)
	assert.ErrorIs(t, err, filters.ErrExcludedColumn)

	_, err = run(t, "", "print", "--ignore", "nope", people)
	assert.Error(t, err)

	_, err = run(t, "", "print", "-o", "xml", people)
	assert.Error(t, err)

	_, err = run(t, "", "print", "testdata/missing.csv")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	isolate(t)

	got, err := run(t, "", "suggest", "-f", "city=boston", people, "name")
	require.NoError(t, err)
	assert.Equal(t, "John\nMark\n", got)

	got, err = run(t, "", "suggest", people, "2")
	require.NoError(t, err)
	assert.Equal(t, "Boston\nAustin\n\n", got)

	_, err = run(t, "", "suggest", people)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestPersistedFilters(t *testing.T) {
	isolate(t)

	store, err := hashstate.New("")
	require.NoError(t, err)
	store.Set(filterable.FilterKey("people", 0), "joh*")
	require.NoError(t, store.Save("people"))

	got, err := run(t, "", "print", "-o", "json", people)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"John","age":"31","city":"Boston"},{"name":"Johnny","age":"22","city":"Austin"}]`+"\n", got)

	// --filter narrows the saved filters.
	got, err = run(t, "", "print", "-o", "json", "-f", "city=austin", people)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Johnny","age":"22","city":"Austin"}]`+"\n", got)

	got, err = run(t, "", "print", "-o", "json", "--no-hash", "-f", "name=mark", people)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Mark","age":"45","city":"Boston"}]`+"\n", got)

	// A different id has no saved filters.
	got, err = run(t, "", "print", "-o", "json", "--id", "other", "-f", "name=ann", people)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Ann","age":"29","city":""}]`+"\n", got)

	got, err = run(t, "", "keys", "-o", "json", people)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"column":"name","key":"filter_people_0","query":"joh*","pattern":".*joh.*.*"},`+
			`{"column":"city","key":"filter_people_2","query":"","pattern":""}]`+"\n", got)
}

func TestViewFallsBackToPrint(t *testing.T) {
	isolate(t)

	got, err := run(t, "", "view", "-o", "json", "--marks", "-f", "name=mark", people)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(got, `"_match"`), "the viewer shows mismatches by default")
	assert.Contains(t, got, `{"name":"Mark","age":"45","city":"Boston","_match":"match"}`)
}

func TestConfigFallback(t *testing.T) {
	isolate(t)

	cfg := filepath.Join(t.TempDir(), "colfilter.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: json\nignore:\n  - city\n  - missing\n"), 0o600))
	t.Setenv("COLFILTER_CFG_FILE", cfg)

	got, err := run(t, "", "print", "-f", "name=ann", people)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Ann","age":"29","city":""}]`+"\n", got)

	_, err = run(t, "", "print", "-f", "city=boston", people)
	assert.ErrorIs(t, err, filters.ErrExcludedColumn)

	// An explicit flag replaces the config list.
	_, err = run(t, "", "print", "--ignore", "name", "-f", "city=boston", people)
	assert.NoError(t, err)
}

func TestCompletion(t *testing.T) {
	isolate(t)

	got, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, got, "complete -F _colfilter colfilter")

	got, err = run(t, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, got, "compdef _colfilter colfilter")
}

func TestExactMatch(t *testing.T) {
	m := exactMatch(true)
	assert.True(t, m("John", "john"))
	assert.False(t, m("Johnny", "john"))
	assert.True(t, m("  ", `\NULL`))

	m = exactMatch(false)
	assert.False(t, m("John", "john"))
	assert.True(t, m("John", "John"))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("yaml"))
	assert.Error(t, OutputValidator("raw"))
	assert.NoError(t, MismatchValidator("only"))
	assert.Error(t, MismatchValidator("never"))
	assert.NoError(t, FormatValidator(""))
	assert.NoError(t, FormatValidator("yml"))
	assert.Error(t, FormatValidator("xml"))
}
