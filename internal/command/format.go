// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/log"
	"github.com/tropy/ttp/internal/meta"
)

// singleArg returns the one positional argument of cmd.
func singleArg(cmd *cli.Command) (string, error) {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return "", fmt.Errorf("%s requires one template: <file>", cmd.Name)
	}
	return args[0], nil
}

func pprintCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	spec, err := singleArg(cmd)
	if err != nil {
		return err
	}
	doc, err := readSource(ctx, cmd, spec)
	if err != nil {
		return err
	}

	out, err := jsonfmt.PrettyOptions(doc, jsonfmt.Options{
		Indent:   cmd.Int("indent"),
		SortKeys: cmd.Bool("sort-keys"),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", spec, err)
	}
	_, err = stdout(cmd).Write(out)
	return err
}

func compileCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	spec, err := singleArg(cmd)
	if err != nil {
		return err
	}
	doc, err := readSource(ctx, cmd, spec)
	if err != nil {
		return err
	}

	out, err := jsonfmt.Compact(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", spec, err)
	}
	_, err = fmt.Fprintln(stdout(cmd), string(out))
	return err
}

func pprintCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pprint",
		Usage:     "pretty-print a template",
		UsageText: "ttp pprint [options] <file>",
		ArgsUsage: "<file>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewFormatFlags("pprint"),
		Action: pprintCommandAction,
	}
}

func compileCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compact a template",
		UsageText: "ttp compile [options] <file>",
		ArgsUsage: "<file>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewS3Flags(),
		Action: compileCommandAction,
	}
}
