// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points TTP_CFG_FILE at a testdata file and resets the
// global Config so the next getter reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TTP_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "text", cfg.Data["output"])
				assert.Equal(t, 2, cfg.Data["padding"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				diff, ok := cfg.Data["diff"].(map[string]interface{})
				require.True(t, ok, "diff should be a map")
				assert.Equal(t, "json", diff["output"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TTP_CFG_FILE", "/nonexistent/path/ttp.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("TTP_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		namespace    string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "top level", testFile: "simple.yaml", key: "output", want: "text"},
		{name: "nested", testFile: "nested.yaml", key: "colors.title", want: "#ff8800"},
		{name: "namespace wins", testFile: "nested.yaml", namespace: "diff", key: "output", want: "json"},
		{name: "namespace falls back", testFile: "simple.yaml", namespace: "diff", key: "output", want: "text"},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []string{"dflt"}, want: "dflt"},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "multiple defaults", testFile: "simple.yaml", key: "missing", defaultValue: []string{"a", "b"}, wantErr: true},
		{name: "not a string", testFile: "mixed-types.yaml", key: "version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, err := Load()
			require.NoError(t, err)
			Config.Namespace = tt.namespace

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	v, err := GetInt("version")
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = GetInt("timeout")
	assert.NoError(t, err)
	assert.Equal(t, 30, v)

	v, err = GetInt("missing", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = GetInt("name")
	assert.ErrorContains(t, err, "not an int")
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	v, err := GetBool("enabled")
	assert.NoError(t, err)
	assert.True(t, v)

	v, err = GetBool("missing", true)
	assert.NoError(t, err)
	assert.True(t, v)

	_, err = GetBool("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetBool("name")
	assert.ErrorContains(t, err, "not a bool")
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	vals, err := GetStringSlice("diff.ignore")
	assert.NoError(t, err)
	assert.Equal(t, []string{"hint", "sort"}, vals)

	vals, err = GetStringSlice("diff.strict")
	assert.NoError(t, err)
	assert.Equal(t, []string{"--ignore hint", "--output yaml"}, vals)

	Config.Namespace = "diff"
	vals, err = GetStringSlice("ignore")
	assert.NoError(t, err)
	assert.Equal(t, []string{"hint", "sort"}, vals)

	def := []string{"x"}
	vals, err = GetStringSlice("does.not.exist", def)
	assert.NoError(t, err)
	assert.Equal(t, def, vals)

	_, err = GetStringSlice("output")
	assert.Error(t, err)
}

func TestGetStringSlice_NonStringElement(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	_, err := GetStringSlice("tags")
	assert.ErrorContains(t, err, "not a string")
}

func TestConfig_Get(t *testing.T) {
	setupTestConfig(t, "nested.yaml")
	_, err := Load()
	require.NoError(t, err)

	val, err := Config.get("diff.output")
	assert.NoError(t, err)
	assert.Equal(t, "json", val)

	_, err = Config.get("output.something")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "no valid path found")
}
