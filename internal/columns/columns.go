// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package columns

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/colfilter/internal/log"
)

var (
	// ErrUnknownColumn is returned when a reference matches no column.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrEmptyKey is returned for a spec without a key.
	ErrEmptyKey = errors.New("empty column key")
)

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Column describes one column of a table.
type Column struct {
	// Key locates the value in a structured record (a dotted path) and is the
	// raw header text for delimited sources.
	Key string `yaml:"key" json:"Key"`
	// Name is the header shown for the column.
	Name string `yaml:"name" json:"Name"`
	// Title is the popover title. Empty falls back to Name.
	Title     string `yaml:"title" json:"Title"`
	Ignore    bool   `yaml:"ignore" json:"Ignore"`
	Filter    bool   `yaml:"filter" json:"Filter"`
	Transform string `yaml:"transform" json:"Transform"`
}

// Parse reads a single spec. The name is the key itself.
func Parse(spec string) Column {
	const (
		keyIdx = iota
		titleIdx
		transformIdx
	)

	fields := strings.SplitN(spec, ":", 3)
	c := Column{Key: strings.TrimSpace(fields[keyIdx])}

	switch {
	case strings.HasPrefix(c.Key, "!"):
		c.Ignore = true
		c.Key = strings.TrimSpace(c.Key[1:])
	case strings.HasPrefix(c.Key, "+"):
		c.Filter = true
		c.Key = strings.TrimSpace(c.Key[1:])
	}
	c.Name = c.Key

	if len(fields) > titleIdx {
		c.Title = strings.TrimSpace(fields[titleIdx])
	}
	if len(fields) > transformIdx {
		c.Transform = strings.TrimSpace(fields[transformIdx])
	}
	log.Tracef("column parsed: key=%s title=%s ignore=%v filter=%v", c.Key, c.Title, c.Ignore, c.Filter)

	return c
}

// Apply reshapes value per the column's transform.
func (c Column) Apply(value string) string {
	if c.Transform == "" {
		return value
	}
	result := value

	if strings.ContainsAny(c.Transform, "tT") {
		if ts, err := time.Parse(time.RFC3339, result); err == nil {
			if strings.Contains(c.Transform, "T") {
				result = humanize.Time(ts)
			} else {
				result = ts.Local().Format("2006-01-02T15:04:05MST")
			}
		}
	}

	lastL := strings.LastIndexAny(c.Transform, "l")
	lastU := strings.LastIndexAny(c.Transform, "u")
	switch {
	case lastL > lastU:
		result = strings.ToLower(result)
	case lastU > lastL:
		result = strings.ToUpper(result)
	}

	if m := lengthRegex.FindAllString(c.Transform, -1); len(m) > 0 {
		n, _ := strconv.Atoi(m[len(m)-1])
		result = shorten(result, n)
	}

	return result
}

// shorten truncates s to n runes, or for negative n keeps both ends around
// "..".
func shorten(s string, n int) string {
	r := []rune(s)
	width := n
	if width < 0 {
		width = -width
	}
	if len(r) <= width {
		return s
	}
	if n >= 0 {
		return string(r[:width])
	}
	side := width/2 - 1
	if side < 1 {
		return string(r[:width])
	}
	return string(r[:side]) + ".." + string(r[len(r)-side:])
}

// List is the ordered column set of a table.
type List []Column

// FromHeader parses every header cell.
func FromHeader(cells []string) List {
	l := make(List, 0, len(cells))
	for _, cell := range cells {
		l = append(l, Parse(cell))
	}
	return l
}

// Set parses a comma separated --columns value and adds each spec. A spec
// whose key or name is already present updates that column. The name of a
// new column is the last segment of its dotted key.
func (l *List) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}

specloop:
	for _, spec := range strings.Split(value, ",") {
		c := Parse(spec)
		if c.Key == "" {
			return fmt.Errorf("%w: %q", ErrEmptyKey, spec)
		}
		segments := strings.Split(c.Key, ".")
		c.Name = segments[len(segments)-1]

		for i := range *l {
			if (*l)[i].Key == c.Key || (*l)[i].Name == c.Key {
				c.Key, c.Name = (*l)[i].Key, (*l)[i].Name
				(*l)[i] = c
				log.Tracef("column updated: i=%d key=%s", i, c.Key)
				continue specloop
			}
		}
		*l = append(*l, c)
	}

	return nil
}

// String renders the list in --columns form.
func (l *List) String() string {
	specs := make([]string, 0, len(*l))
	for _, c := range *l {
		prefix := ""
		switch {
		case c.Ignore:
			prefix = "!"
		case c.Filter:
			prefix = "+"
		}
		spec := prefix + c.Key
		if c.Title != "" || c.Transform != "" {
			spec += ":" + c.Title
		}
		if c.Transform != "" {
			spec += ":" + c.Transform
		}
		specs = append(specs, spec)
	}
	return strings.Join(specs, ",")
}

// Names returns the header of every column.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}
	return names
}

// Index resolves ref to a column index. ref is a column name (compared
// without case) or a zero-based index.
func (l List) Index(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, c := range l {
		if strings.EqualFold(c.Name, ref) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(l) {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownColumn, ref)
}

// Indices resolves each ref with Index.
func (l List) Indices(refs []string) ([]int, error) {
	out := make([]int, 0, len(refs))
	for _, ref := range refs {
		i, err := l.Index(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}
