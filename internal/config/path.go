// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const homeMarker = "~"

// ExpandTilde resolves a leading "~" in path to the current user's home directory.
// Paths that do not start with "~" (including "~user/..." forms) are returned unchanged.
func ExpandTilde(path string) (string, error) {
	return ExpandTildeWith(path, os.UserHomeDir)
}

// ExpandTildeWith is ExpandTilde with an explicit home directory lookup.
func ExpandTildeWith(path string, homeDir func() (string, error)) (string, error) {
	if path != homeMarker && !strings.HasPrefix(path, homeMarker+string(filepath.Separator)) && !strings.HasPrefix(path, homeMarker+"/") {
		return path, nil
	}

	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}
	if home == "" {
		return "", fmt.Errorf("could not get user home directory to resolve path '%s': empty home", path)
	}

	if path == homeMarker {
		return home, nil
	}

	// A home of "/" would otherwise produce "//rest".
	if home == string(filepath.Separator) {
		return strings.TrimPrefix(path, homeMarker), nil
	}

	return filepath.Join(home, path[len(homeMarker)+1:]), nil
}
