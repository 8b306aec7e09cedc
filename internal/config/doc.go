// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for ttp's user
// configuration. The configuration is a YAML document named ttp.yaml in the
// user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/ttp.yaml or $HOME/.config/ttp.yaml
//   - macOS: $HOME/Library/Application Support/ttp.yaml
//   - Windows: %AppData%/ttp.yaml
//
// TTP_CFG_FILE overrides the location. Keys are addressed with dotted paths
// and, when a Namespace is set, the namespaced key ("diff.output") is tried
// before the bare key ("output").
package config
