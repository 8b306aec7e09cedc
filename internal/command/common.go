// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tropy/ttp/internal/meta"
	"github.com/tropy/ttp/internal/source"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// readSource reads one template argument honoring the S3 flags.
func readSource(ctx context.Context, cmd *cli.Command, spec string) ([]byte, error) {
	m := GetMeta(cmd)
	return source.Read(ctx, spec, m.Stdin,
		source.WithRegion(cmd.String("region")),
		source.WithProfile(cmd.String("profile")),
		source.WithEndpoint(cmd.String("endpoint")),
	)
}

// NormalizeArgs rewrites every bare "-" after the subcommand to
// source.StdinPath. The flag parser stops at a bare "-", which would drop the
// arguments after it.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if i > 1 && a == source.Stdin {
			a = source.StdinPath
		}
		out[i] = a
	}
	return out
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// stdout returns the command's output stream.
func stdout(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stdout; w != nil {
		return w
	}
	return os.Stdout
}
