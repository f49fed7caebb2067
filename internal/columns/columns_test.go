// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package columns

import (
	"embed"
	"testing"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testParseCase struct {
	Name string `yaml:"name"`
	Spec string `yaml:"spec"`
	Want Column `yaml:"want"`
}

type testSetCase struct {
	Name    string   `yaml:"name"`
	Initial []Column `yaml:"initial"`
	Value   string   `yaml:"value"`
	Want    []Column `yaml:"want"`
	WantErr bool     `yaml:"wantErr"`
}

type testApplyCase struct {
	Name      string `yaml:"name"`
	Transform string `yaml:"transform"`
	Value     string `yaml:"value"`
	Want      string `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestParse(t *testing.T) {
	var tests []testParseCase
	require.NoError(t, loadTestData("parse_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, Parse(tt.Spec))
		})
	}
}

func TestListSet(t *testing.T) {
	var tests []testSetCase
	require.NoError(t, loadTestData("set_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			l := List(tt.Initial)
			err := l.Set(tt.Value)
			if tt.WantErr {
				assert.ErrorIs(t, err, ErrEmptyKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.Want), len(l))
			for i, want := range tt.Want {
				assert.Equal(t, want, l[i], "column %d", i)
			}
		})
	}
}

func TestApply(t *testing.T) {
	var tests []testApplyCase
	require.NoError(t, loadTestData("apply_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, Column{Transform: tt.Transform}.Apply(tt.Value))
		})
	}
}

func TestApplyTimeAgo(t *testing.T) {
	when := time.Now().Add(-3 * time.Hour).UTC()
	got := Column{Transform: "T"}.Apply(when.Format(time.RFC3339))
	assert.Equal(t, humanize.Time(when), got)
}

func TestListString(t *testing.T) {
	l := List{}
	require.NoError(t, l.Set("name,!age,+address.city:Town:u"))
	assert.Equal(t, "name,!age,+address.city:Town:u", l.String())
}

func TestFromHeader(t *testing.T) {
	l := FromHeader([]string{"Name", "!Age", "City:Home town"})
	assert.Equal(t, []string{"Name", "Age", "City"}, l.Names())
	assert.True(t, l[1].Ignore)
	assert.Equal(t, "Home town", l[2].Title)
}

func TestIndex(t *testing.T) {
	l := FromHeader([]string{"Name", "Age", "2"})

	tests := []struct {
		ref  string
		want int
	}{
		{"name", 0},
		{" AGE ", 1},
		{"1", 1},
		// A name wins over an index.
		{"2", 2},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := l.Index(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}

	_, err := l.Index("3")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = l.Index("city")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	idx, err := l.Indices([]string{"age", "0"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, idx)

	_, err = l.Indices([]string{"age", "nope"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
