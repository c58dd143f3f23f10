// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fdfzf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.home, ".config", "fdfzf", "config.toml")+"\n", out)

	out, _, err = execute(t, "config", "path", "-c", "~/custom.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.home, "custom.toml")+"\n", out)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, "config", "init", "-c", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	_, stderr, err := execute(t, "config", "init", "-c", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "already exists")

	require.NoError(t, os.WriteFile(env.configPath, []byte("[profiles.x]\n"), 0600))
	_, _, err = execute(t, "config", "init", "--force", "-c", env.configPath)
	require.NoError(t, err)
	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, config.SeedConfig, string(data))
}

const profilesDoc = `
[profiles.default]
path = "~"
depth = "4"

[profiles.work]
path = "/srv/work"
fd_type = "f"

[profiles.notes]
depth = 1
`

func TestConfigProfiles(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte(profilesDoc), 0600))

	out, _, err := execute(t, "config", "profiles", "-c", env.configPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "default"))
	assert.Equal(t, "notes", lines[1])
	assert.Equal(t, "work", lines[2])
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte(profilesDoc), 0600))

	out, _, err := execute(t, "config", "show", "-c", env.configPath)
	require.NoError(t, err)
	var whole struct {
		Commands config.Commands          `yaml:"commands"`
		Profiles map[string]map[string]any `yaml:"profiles"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &whole))
	assert.Equal(t, "fd", whole.Commands.Search)
	assert.Len(t, whole.Profiles, 3)
	assert.Equal(t, "/srv/work", whole.Profiles["work"]["path"])
	assert.Equal(t, "f", whole.Profiles["work"]["fd_type"])

	out, _, err = execute(t, "config", "show", "notes", "-c", env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "notes:\n    depth: 1\n", out)

	_, _, err = execute(t, "config", "show", "nope", "-c", env.configPath)
	assert.Error(t, err)
}

func TestConfigShowResolved(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte(profilesDoc), 0600))

	out, _, err := execute(t, "config", "show", "work", "--resolved", "-c", env.configPath)
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, config.Settings{Root: "/srv/work", MaxDepth: 4, Type: config.TypeFile, Hidden: false}, got)

	out, _, err = execute(t, "config", "show", "--resolved", "-c", env.configPath)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, env.home, got.Root)
	assert.Equal(t, config.TypeDirectory, got.Type)
}

func TestProfileFlagCompletion(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte(profilesDoc), 0600))

	out, _, err := execute(t, "__complete", "-c", env.configPath, "--profile", "w")
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.NotContains(t, out, "notes")

	out, _, err = execute(t, "__complete", "--type", "")
	require.NoError(t, err)
	assert.Contains(t, out, "d\tdirectories")
	assert.Contains(t, out, "f\tfiles")
}

func TestCompletionDoesNotCreateConfig(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(t, "__complete", "--profile", "")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(env.home, ".config", "fdfzf", "config.toml"))
}
