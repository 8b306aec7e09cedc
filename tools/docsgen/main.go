// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes markdown and man pages for every ttp subcommand.
// Usage and flags come from the live command tree; examples and notes come
// from <docs>/templates/ttp.yaml.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tropy/ttp/internal/command"
	"github.com/tropy/ttp/internal/meta"
)

type Extras struct {
	Subcommands map[string]Extra `yaml:"subcommands"`
}

type Extra struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         []string
}

type Subcommand struct {
	Extra
	ID    string
	Short string
	Usage string
	Flags []Flag
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Output struct {
	Template *template.Template
	Folder   string
	Prefix   string
	Suffix   string
}

var funcs = template.FuncMap{"join": strings.Join}

var markdownTemplate = template.Must(template.New("md").Funcs(funcs).Parse(`# ttp {{.ID}}

{{.Short}}

    {{.Usage}}
{{- with .Description}}

{{.}}
{{- end}}

## Flags
{{range .Flags}}
- ` + "`{{.Syntax}}`" + ` {{.Description}}{{with .Default}} (default: {{.}}){{end}}{{with .Env}} [env: {{join . ", "}}]{{end}}
{{- end}}
{{- with .Examples}}

## Examples
{{range .}}
{{.Description}}

    {{.Command}}
{{end}}
{{- end}}
{{- with .Notes}}

## Notes
{{range .}}
- {{.}}
{{- end}}
{{end}}
_ttp {{.Version}}, {{.Date}}_
`))

var manTemplate = template.Must(template.New("man").Funcs(funcs).Parse(`.TH TTP-{{.IDUpper}} 1 "{{.Date}}" "ttp {{.Version}}"
.SH NAME
ttp-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
{{- with .Description}}
.SH DESCRIPTION
{{.}}
{{- end}}
.SH OPTIONS
{{- range .Flags}}
.TP
\fB{{.Syntax}}\fR
{{.Description}}{{with .Default}} Default: {{.}}.{{end}}
{{- end}}
{{- with .Examples}}
.SH EXAMPLES
{{- range .}}
.PP
{{.Description}}
.IP
{{.Command}}
{{- end}}
{{- end}}
`))

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(2)
	}
	if err := generate(os.Args[1], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(docs string, progress io.Writer) error {
	extras, err := loadExtras(filepath.Join(docs, "templates", "ttp.yaml"))
	if err != nil {
		return err
	}

	outputs := []Output{
		{Template: markdownTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "ttp-", Suffix: ".1"},
	}

	date := time.Now().Format("January 2, 2006")
	version := getVersion()

	for _, sub := range subcommands(command.NewApp(meta.Meta{}), extras) {
		data := TemplateData{
			Subcommand: sub,
			Date:       date,
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, o := range outputs {
			if err := os.MkdirAll(o.Folder, 0o755); err != nil {
				return err
			}
			path := filepath.Join(o.Folder, o.Prefix+sub.ID+o.Suffix)
			fmt.Fprintln(progress, "Generating", path)
			if err := render(path, o.Template, data); err != nil {
				return err
			}
		}
	}
	return nil
}

func render(path string, tmpl *template.Template, data TemplateData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(file, data); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

// loadExtras reads the hand-written part of the docs. A missing file is not
// an error.
func loadExtras(path string) (Extras, error) {
	var extras Extras
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return extras, nil
	}
	if err != nil {
		return extras, err
	}
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return extras, fmt.Errorf("%s: %w", path, err)
	}
	return extras, nil
}

// subcommands describes every subcommand of app in name order.
func subcommands(app *cli.Command, extras Extras) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}
		sub := Subcommand{
			Extra: extras.Subcommands[cmd.Name],
			ID:    cmd.Name,
			Short: cmd.Usage,
			Usage: cmd.UsageText,
		}
		for _, f := range cmd.Flags {
			sub.Flags = append(sub.Flags, describeFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
}

func describeFlag(f cli.Flag) Flag {
	names := f.Names()
	flag := Flag{ID: names[0]}

	syntax := make([]string, len(names))
	for i, n := range names {
		if len(n) == 1 {
			syntax[i] = "-" + n
		} else {
			syntax[i] = "--" + n
		}
	}
	flag.Syntax = strings.Join(syntax, ", ")

	if doc, ok := f.(cli.DocGenerationFlag); ok {
		flag.Description = doc.GetUsage()
		flag.Env = doc.GetEnvVars()
		if doc.TakesValue() {
			flag.Syntax += " <value>"
			flag.Default = doc.GetDefaultText()
		}
	}
	return flag
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
