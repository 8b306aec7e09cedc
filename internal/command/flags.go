// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tropy/ttp/internal/config"
	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/output"
)

// NewDiffFlags builds the flags of the diff command. Display flags may also be
// set from the config file, namespaced ("diff.output") or global ("output").
func NewDiffFlags(ns string) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   output.FormatText,
			Sources: configSources(ns, "output", "TTP_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, "color"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show column titles with text output",
			Sources: configSources(ns, "titles"),
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   1,
			Sources: configSources(ns, "padding"),
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "ignore",
			Aliases: []string{"i"},
			Usage:   "comma-separated list of attributes to leave out of the comparison",
			Sources: cli.EnvVars("TTP_IGNORE"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to the report",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "print only the number of entries in each section",
		},
		&cli.BoolFlag{
			Name:    "unchanged",
			Aliases: []string{"u"},
			Usage:   "list fields that kept their position in the order section",
			Sources: configSources(ns, "unchanged"),
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "show a JSON delta of the whole documents",
		},
		&cli.BoolFlag{
			Name:  "interactive",
			Usage: "browse the changes interactively",
		},
		&cli.BoolFlag{
			Name:  "exit-code",
			Usage: "exit with status 1 when the templates differ",
		},
	}, NewS3Flags()...)
}

// NewFormatFlags builds the flags of the pprint command.
func NewFormatFlags(ns string) []cli.Flag {
	return append([]cli.Flag{
		&cli.IntFlag{
			Name:    "indent",
			Usage:   "spaces per indentation level",
			Value:   jsonfmt.DefaultIndent,
			Sources: configSources(ns, "indent"),
			Validator: func(value int) error {
				return FlagValidators(value, IndentValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "sort-keys",
			Usage: "sort object keys",
		},
	}, NewS3Flags()...)
}

// NewS3Flags builds the flags used to read s3:// templates.
func NewS3Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// templates",
			Sources: cli.EnvVars("TTP_REGION"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile for s3:// templates",
			Sources: cli.EnvVars("TTP_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3-compatible endpoint URL",
			Sources: cli.EnvVars("TTP_S3_ENDPOINT"),
		},
	}
}

// configSources builds a source chain of the given env vars followed by the
// namespaced and global config file keys. Without a config file only the env
// vars remain.
func configSources(ns, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.EnvVars(envs...)

	path, err := config.File()
	if err != nil {
		return chain
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return chain
}
