// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes a markdown page per colfilter subcommand into the folder
// named by its argument.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/command"
)

const pageTemplate = `# colfilter {{ .Name }}

{{ .Usage }}

    {{ .UsageText }}
{{ if .Flags }}
## Flags

| Flag | Description |
|---|---|
{{- range .Flags }}
| {{ .Syntax }} | {{ .Description }} |
{{- end }}
{{ end }}
_Generated {{ .Date }} for version {{ .Version }}._
`

type Flag struct {
	Syntax      string
	Description string
}

type TemplateData struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []Flag
	Date      string
	Version   string
}

type usager interface {
	GetUsage() string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <folder>")
		os.Exit(1)
	}
	folder := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"colfilter"})
	if err != nil {
		panic(err)
	}

	tmpl := template.Must(template.New("page").Parse(pageTemplate))
	if err := os.MkdirAll(folder, 0o755); err != nil { //nolint:mnd
		panic(err)
	}

	for _, cmd := range app.Commands {
		data := TemplateData{
			Name:      cmd.Name,
			Usage:     cmd.Usage,
			UsageText: cmd.UsageText,
			Flags:     flags(cmd),
			Date:      time.Now().Format("January 2, 2006"),
			Version:   getVersion(),
		}

		path := filepath.Join(folder, cmd.Name+".md")
		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		fmt.Println("Generating", path)
		if err := tmpl.Execute(file, data); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// flags lists the visible flags of cmd sorted by name.
func flags(cmd *cli.Command) []Flag {
	var out []Flag
	for _, f := range cmd.VisibleFlags() {
		names := make([]string, 0, len(f.Names()))
		for _, n := range f.Names() {
			if len(n) == 1 {
				names = append(names, "-"+n)
			} else {
				names = append(names, "--"+n)
			}
		}
		desc := ""
		if u, ok := f.(usager); ok {
			desc = u.GetUsage()
		}
		out = append(out, Flag{Syntax: "`" + strings.Join(names, ", ") + "`", Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Syntax < out[j].Syntax })
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
