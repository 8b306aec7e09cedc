// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/tropy/ttp/internal/config"
	"github.com/tropy/ttp/internal/differ"
	"github.com/tropy/ttp/internal/filters"
	"github.com/tropy/ttp/internal/log"
	"github.com/tropy/ttp/internal/meta"
	"github.com/tropy/ttp/internal/output"
	"github.com/tropy/ttp/internal/source"
	"github.com/tropy/ttp/internal/template"
)

// ErrTemplatesDiffer is returned by diff --exit-code when the templates
// differ.
var ErrTemplatesDiffer = errors.New("templates differ")

// diffCommandAction is the action handler for the "diff" subcommand. It reads
// both templates, computes the report and renders it.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	config.Config.Namespace = "diff"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff requires two templates: <from> <to>")
	}
	if source.IsStdin(args[0]) && source.IsStdin(args[1]) {
		return fmt.Errorf("only one template can be read from stdin")
	}
	if cmd.Bool("raw") && cmd.Bool("interactive") {
		return fmt.Errorf("--raw and --interactive cannot be combined")
	}

	if err := source.PurgeCache(); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	}

	from, err := readSource(ctx, cmd, args[0])
	if err != nil {
		return err
	}
	to, err := readSource(ctx, cmd, args[1])
	if err != nil {
		return err
	}

	ignore := ignoredAttributes(cmd)
	w := stdout(cmd)

	if cmd.Bool("raw") {
		color := cmd.Bool("color")
		if !cmd.IsSet("color") {
			color = isTerminal(w) && os.Getenv("NO_COLOR") == ""
		}
		modified, err := differ.Raw(w, from, to, differ.RawOptions{Ignore: ignore, Color: color})
		if err != nil {
			return err
		}
		if modified && cmd.Bool("exit-code") {
			return ErrTemplatesDiffer
		}
		return nil
	}

	report, err := template.DiffDocuments(from, to, template.IgnoreAttributes(ignore...))
	if err != nil {
		return err
	}
	report = filters.Apply(report, cmd.String("filter"))

	if cmd.Bool("interactive") {
		if err := browse(report, m); err != nil {
			return err
		}
	} else {
		err = output.Render(w, report, output.Options{
			Format:      cmd.String("output"),
			Color:       cmd.Bool("color"),
			Titles:      cmd.Bool("titles"),
			Padding:     cmd.Int("padding"),
			Unchanged:   cmd.Bool("unchanged"),
			SummaryOnly: cmd.Bool("summary"),
		})
		if err != nil {
			return err
		}
	}

	if cmd.Bool("exit-code") && !report.Empty() {
		return ErrTemplatesDiffer
	}
	return nil
}

// ignoredAttributes returns --ignore, falling back to the "ignore" list of
// the config file.
func ignoredAttributes(cmd *cli.Command) []string {
	if cmd.IsSet("ignore") {
		return splitList(cmd.String("ignore"))
	}
	ignore, err := config.GetStringSlice("ignore", nil)
	if err != nil {
		log.WithError(err).Warnf("ignoring config key ignore")
		return nil
	}
	return ignore
}

func browse(report *template.Report, m meta.Meta) error {
	if !isTerminal(m.Stdout) {
		return fmt.Errorf("--interactive requires a terminal")
	}
	return differ.Browse(report, tea.WithInput(m.Stdin), tea.WithOutput(m.Stdout))
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two templates",
		UsageText: "ttp diff [options] <from> <to>",
		ArgsUsage: "<from> <to>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewDiffFlags("diff"),
		Action: diffCommandAction,
	}
}
