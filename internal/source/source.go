// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tfctl/colfilter/internal/aws"
	"github.com/tfctl/colfilter/internal/columns"
	"github.com/tfctl/colfilter/internal/log"
)

// Format names a source encoding.
type Format string

const (
	CSV  Format = "csv"
	TSV  Format = "tsv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Stdin is the reference that reads the table from standard input.
const Stdin = "-"

var (
	// ErrUnknownFormat is returned when no format is given or detected.
	ErrUnknownFormat = errors.New("unknown source format")
	// ErrNoHeader is returned for a source without any column.
	ErrNoHeader = errors.New("source has no header")
)

// Data is a loaded table.
type Data struct {
	ID      string
	Columns columns.List
	Records [][]string
}

type options struct {
	format  Format
	columns columns.List
	root    string
	stdin   io.Reader
	s3      aws.ObjectGetter
	s3Opts  []aws.Option
}

// Option customizes Load.
type Option func(*options)

// WithFormat forces the format instead of detecting it from the extension.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithColumns selects and shapes the columns of structured sources. For CSV
// and TSV the specs are merged into the header by name.
func WithColumns(cols columns.List) Option {
	return func(o *options) { o.columns = cols }
}

// WithRoot locates the record list inside a structured document.
func WithRoot(path string) Option {
	return func(o *options) { o.root = path }
}

// WithStdin replaces os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithS3Client reads s3:// references through client instead of a client
// built from the AWS environment.
func WithS3Client(client aws.ObjectGetter) Option {
	return func(o *options) { o.s3 = client }
}

// WithS3Options configures the client built for s3:// references.
func WithS3Options(opts ...aws.Option) Option {
	return func(o *options) { o.s3Opts = append(o.s3Opts, opts...) }
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case CSV, TSV, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat picks the format from the reference's extension.
func DetectFormat(ref string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(ref), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, ref)
	}
	return ParseFormat(ext)
}

// ID derives a table id from the reference: the base name without its
// extension, or "stdin".
func ID(ref string) string {
	if ref == Stdin {
		return "stdin"
	}
	base := filepath.Base(ref)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses the table ref names.
func Load(ctx context.Context, ref string, opts ...Option) (*Data, error) {
	o := options{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	format := o.format
	if format == "" {
		f, err := DetectFormat(ref)
		if err != nil {
			return nil, err
		}
		format = f
	}

	r, err := open(ctx, ref, &o)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := Parse(r, format, o.columns, o.root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ref, err)
	}
	data.ID = ID(ref)
	log.Debugf("source loaded: ref=%s format=%s columns=%d records=%d", ref, format, len(data.Columns), len(data.Records))

	return data, nil
}

func open(ctx context.Context, ref string, o *options) (io.ReadCloser, error) {
	switch {
	case ref == Stdin:
		return io.NopCloser(o.stdin), nil
	case aws.IsURI(ref):
		client := o.s3
		if client == nil {
			c, err := aws.NewS3(ctx, o.s3Opts...)
			if err != nil {
				return nil, err
			}
			client = c
		}
		return aws.Open(ctx, client, ref)
	default:
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to open source: %w", err)
		}
		return f, nil
	}
}

// Parse decodes a table from r.
func Parse(r io.Reader, format Format, cols columns.List, root string) (*Data, error) {
	var (
		data *Data
		err  error
	)
	switch format {
	case CSV:
		data, err = parseDelimited(r, ',', cols)
	case TSV:
		data, err = parseDelimited(r, '\t', cols)
	case JSON:
		data, err = parseJSON(r, cols, root)
	case YAML:
		data, err = parseYAML(r, cols, root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(data.Columns) == 0 {
		return nil, ErrNoHeader
	}
	return data, nil
}

// shape applies each column's transform to the records in place.
func shape(data *Data) {
	for _, rec := range data.Records {
		for i := range rec {
			if i < len(data.Columns) {
				rec[i] = data.Columns[i].Apply(rec[i])
			}
		}
	}
}

// merge overlays specs onto header columns with the same name.
func merge(header columns.List, specs columns.List) columns.List {
	for _, s := range specs {
		for i := range header {
			if strings.EqualFold(header[i].Name, s.Key) || strings.EqualFold(header[i].Name, s.Name) {
				name := header[i].Name
				header[i] = s
				header[i].Key, header[i].Name = name, name
			}
		}
	}
	return header
}
