// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tropy/ttp/internal/command"
	"github.com/tropy/ttp/internal/config"
	"github.com/tropy/ttp/internal/log"
	"github.com/tropy/ttp/internal/version"
)

// defaultSet is the config set expanded by a bare "@".
const defaultSet = "defaults"

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(w io.Writer, args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return command.NormalizeArgs(args)
}

// processSetOnly replaces the first @name argument after the subcommand with
// the entries of the <subcommand>.<name> config list, each split on
// whitespace. A bare "@" names the defaults set.
func processSetOnly(args []string) []string {
	const first = 2
	if len(args) <= first {
		return args
	}

	at := -1
	for i := first; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			at = i
			break
		}
	}
	if at == -1 {
		return args
	}

	set := strings.TrimPrefix(args[at], "@")
	if set == "" {
		set = defaultSet
	}
	entries, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("set %s not expanded: %v", set, err)
	}

	out := make([]string, 0, len(args)+len(entries))
	out = append(out, args[:at]...)
	for _, entry := range entries {
		out = append(out, strings.Fields(entry)...)
	}
	return append(out, args[at+1:]...)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrTemplatesDiffer) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(os.Stdout, args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
