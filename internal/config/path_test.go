// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func home(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func TestExpandTildeWith(t *testing.T) {
	tests := []struct {
		name string
		path string
		home string
		want string
	}{
		{"absolute path untouched", "/var/log", "/home/u", "/var/log"},
		{"relative path untouched", "src/app", "/home/u", "src/app"},
		{"empty path untouched", "", "/home/u", ""},
		{"tilde user form untouched", "~bob/code", "/home/u", "~bob/code"},
		{"tilde inside path untouched", "a/~/b", "/home/u", "a/~/b"},
		{"bare marker", "~", "/home/u", "/home/u"},
		{"nested path", "~/a/b", "/home/u", "/home/u/a/b"},
		{"trailing separator", "~/", "/home/u", "/home/u"},
		{"root home no doubled separator", "~/a/b", "/", "/a/b"},
		{"root home bare marker", "~", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTildeWith(tt.path, home(tt.home))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandTildeWithoutHome(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("no home") }

	_, err := ExpandTildeWith("~/x", failing)
	assert.Error(t, err)

	got, err := ExpandTildeWith("/x", failing)
	require.NoError(t, err, "non-tilde paths never consult the home directory")
	assert.Equal(t, "/x", got)
}

func TestExpandTildeUsesUserHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	got, err := ExpandTilde("~")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
