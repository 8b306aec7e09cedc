// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for ttp. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
