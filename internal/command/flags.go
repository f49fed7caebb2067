// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewTableFlags returns the flags every command that loads a table takes. ns
// is the command namespace and path the config file, which may be empty.
func NewTableFlags(ns string, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "case-sensitive",
			Aliases: []string{"C"},
			Usage:   "match queries with case",
			Sources: configChain(ns, path, "case-sensitive", "COLFILTER_CASE_SENSITIVE"),
		},
		&cli.StringFlag{
			Name:  "columns",
			Usage: "comma-separated column specs, e.g. name,!age,city:Home town",
		},
		&cli.BoolFlag{
			Name:    "exact",
			Aliases: []string{"x"},
			Usage:   "match the whole cell instead of a glob",
			Sources: configChain(ns, path, "exact"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of column=query filters",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "source format (csv, tsv, json, yaml); defaults to the extension",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "table id used in persisted filter keys; defaults to the source name",
		},
		&cli.StringFlag{
			Name:  "ignore",
			Usage: "comma-separated columns excluded from filtering",
		},
		&cli.BoolFlag{
			Name:    "no-hash",
			Usage:   "do not read or write persisted filters",
			Sources: configChain(ns, path, "no-hash", "COLFILTER_NO_HASH"),
		},
		&cli.StringFlag{
			Name:  "only",
			Usage: "comma-separated columns that take filters; wins over --ignore",
		},
		&cli.StringFlag{
			Name:  "root",
			Usage: "path of the record list inside a json or yaml document",
		},
		&cli.StringFlag{
			Name:    "title",
			Usage:   "popover title template; %field% is the column title",
			Sources: configChain(ns, path, "title"),
		},
	}
	flags = append(flags, newS3Flags()...)

	return
}

// NewOutputFlags returns the flags that shape printed rows. The viewer shows
// mismatching rows by default; everything else hides them.
func NewOutputFlags(ns string, path string) (flags []cli.Flag) {
	mismatch := "hide"
	if ns == "view" {
		mismatch = "show"
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configChain(ns, path, "color"),
		},
		&cli.BoolFlag{
			Name:  "marks",
			Usage: "add each row's match state to the output",
		},
		&cli.StringFlag{
			Name:    "mismatch",
			Aliases: []string{"m"},
			Usage:   "mismatching rows: show, hide or only",
			Value:   mismatch,
			Sources: configChain(ns, path, "mismatch"),
			Validator: func(value string) error {
				return FlagValidators(value, MismatchValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: configChain(ns, path, "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "cell padding for text output",
			Value:   1,
			Sources: configChain(ns, path, "padding"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles and a summary with text output",
			Sources: configChain(ns, path, "titles"),
		},
	}

	return
}

// newS3Flags returns the flags that configure the client of s3:// sources.
func newS3Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		},
		&cli.StringFlag{
			Name:   "endpoint",
			Usage:  "S3 endpoint override, e.g. a local MinIO",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("COLFILTER_S3_ENDPOINT"),
			),
		},
	}
}

// configChain builds a value source chain from env vars followed by the
// namespaced and global keys of the config file.
func configChain(ns string, path string, key string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if path == "" {
		return chain
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))

	return chain
}
