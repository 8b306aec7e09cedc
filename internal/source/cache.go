// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"github.com/tropy/ttp/internal/cacheutil"
	"github.com/tropy/ttp/internal/config"
)

// PurgeCache drops cached templates older than the config key cache.clean,
// in hours. Zero or unset keeps everything.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean", 0)
	return cacheutil.Purge(cleanHours)
}
