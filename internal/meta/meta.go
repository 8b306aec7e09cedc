// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/tropy/ttp/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries the CLI
// arguments, loaded configuration, context, the starting working directory
// and the streams commands read from and write to.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
}
