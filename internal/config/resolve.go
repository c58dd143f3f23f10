// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"fmt"
	"os"
)

// DefaultProfileName is the profile consulted after the custom one.
const DefaultProfileName = "default"

// Built-in values used when no flag or profile sets a field.
const (
	DefaultPath   = "~"
	DefaultDepth  = uint(4)
	DefaultType   = TypeDirectory
	DefaultHidden = false
)

// Overrides holds values given on the command line. Nil means the flag was not set.
type Overrides struct {
	Path   *string
	Depth  *uint
	Type   *EntryType
	Hidden *bool
}

// Settings are the fully resolved values for one search.
type Settings struct {
	Root     string    `yaml:"root"`
	MaxDepth uint      `yaml:"max_depth"`
	Type     EntryType `yaml:"fd_type"`
	Hidden   bool      `yaml:"hidden"`
}

// Resolve picks each setting from, in order: the command line, the profile
// named profileName, the default profile and the built-in value. The root is
// then tilde-expanded. A profileName that matches no profile is ignored.
func Resolve(o Overrides, f *File, profileName string) (Settings, error) {
	return ResolveWith(o, f, profileName, os.UserHomeDir)
}

// ResolveWith is Resolve with an explicit home directory lookup.
func ResolveWith(o Overrides, f *File, profileName string, homeDir func() (string, error)) (Settings, error) {
	def, _ := f.Profile(DefaultProfileName)
	var custom Profile
	if profileName != "" {
		custom, _ = f.Profile(profileName)
	}

	path := firstPresent(DefaultPath, o.Path, custom.Path, def.Path)
	root, err := ExpandTildeWith(path, homeDir)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve search root: %w", err)
	}

	return Settings{
		Root:     root,
		MaxDepth: firstPresent(DefaultDepth, o.Depth, custom.Depth, def.Depth),
		Type:     firstPresent(DefaultType, o.Type, custom.Type, def.Type),
		Hidden:   firstPresent(DefaultHidden, o.Hidden, custom.Hidden, def.Hidden),
	}, nil
}

// firstPresent returns the first non-nil candidate, or fallback.
func firstPresent[T any](fallback T, candidates ...*T) T {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}
