// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles the fdfzf configuration file: locating and seeding it,
// decoding its named search profiles and resolving the settings used for a run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"fdfzf/internal/filelock"

	"github.com/BurntSushi/toml"
)

// ErrInvalidProfile is wrapped by every error caused by a profile field holding
// a value of the right TOML type but outside the accepted range.
var ErrInvalidProfile = errors.New("invalid profile")

// SeedConfig is written to the default location on first run.
const SeedConfig = `[profiles.default]
path = "~"
depth = "4"
fd_type = "d"
hidden = false
`

// EntryType restricts the search to directories or regular files.
type EntryType string

const (
	TypeDirectory EntryType = "d"
	TypeFile      EntryType = "f"
)

// ParseEntryType accepts the fd type letters "d" and "f".
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case TypeDirectory, TypeFile:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("type must be 'd' or 'f', got '%s'", s)
}

// ParseDepth accepts a positive decimal integer.
func ParseDepth(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("depth must be a positive integer, got '%s'", s)
	}
	return uint(n), nil
}

// Profile is a named, partially specified set of search settings.
// A nil field defers to the next source in the precedence chain.
type Profile struct {
	Path   *string    `yaml:"path,omitempty"`
	Depth  *uint      `yaml:"depth,omitempty"`
	Type   *EntryType `yaml:"fd_type,omitempty"`
	Hidden *bool      `yaml:"hidden,omitempty"`
}

// Commands names the external binaries making up the pipeline.
type Commands struct {
	Search       string   `toml:"search" yaml:"search"`
	Selector     string   `toml:"selector" yaml:"selector"`
	SelectorArgs []string `toml:"selector_args" yaml:"selector_args,omitempty"`
}

// DefaultCommands returns fd piped into fzf with no extra arguments.
func DefaultCommands() Commands {
	return Commands{Search: "fd", Selector: "fzf"}
}

// File is the decoded configuration document.
type File struct {
	// QuietCancel controls whether a cancelled selection is reported on stderr.
	// Nil means the built-in default (quiet).
	QuietCancel *bool `yaml:"quiet_cancel,omitempty"`

	Commands Commands `yaml:"commands"`

	// Profiles maps profile names to their settings.
	Profiles map[string]Profile `yaml:"profiles"`
}

type rawProfile struct {
	Path   *string `toml:"path"`
	Depth  any     `toml:"depth"` // TOML string or integer
	FdType *string `toml:"fd_type"`
	Hidden *bool   `toml:"hidden"`
}

type rawFile struct {
	QuietCancel *bool                 `toml:"quiet_cancel"`
	Commands    Commands              `toml:"commands"`
	Profiles    map[string]rawProfile `toml:"profiles"`
}

// Profile returns the named profile. A missing profile is not an error.
func (f *File) Profile(name string) (Profile, bool) {
	if f == nil || f.Profiles == nil {
		return Profile{}, false
	}
	p, ok := f.Profiles[name]
	return p, ok
}

// ProfileNames returns the profile names in sorted order.
func (f *File) ProfileNames() []string {
	if f == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(f.Profiles))
}

// QuietCancelOr returns the configured quiet_cancel value or def when unset.
func (f *File) QuietCancelOr(def bool) bool {
	if f == nil || f.QuietCancel == nil {
		return def
	}
	return *f.QuietCancel
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/fdfzf/config.toml, falling back
// to ~/.config/fdfzf/config.toml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fdfzf", "config.toml"), nil
	}
	return ExpandTilde("~/.config/fdfzf/config.toml")
}

// Parse decodes a TOML configuration document. Unknown keys are ignored.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}

	f := &File{
		QuietCancel: raw.QuietCancel,
		Commands:    raw.Commands,
		Profiles:    make(map[string]Profile, len(raw.Profiles)),
	}
	defaults := DefaultCommands()
	if f.Commands.Search == "" {
		f.Commands.Search = defaults.Search
	}
	if f.Commands.Selector == "" {
		f.Commands.Selector = defaults.Selector
	}

	for name, rp := range raw.Profiles {
		p, err := rp.profile()
		if err != nil {
			return nil, fmt.Errorf("profile '%s': %w", name, err)
		}
		f.Profiles[name] = p
	}
	return f, nil
}

func (rp rawProfile) profile() (Profile, error) {
	p := Profile{Path: rp.Path, Hidden: rp.Hidden}

	switch v := rp.Depth.(type) {
	case nil:
	case string:
		d, err := ParseDepth(v)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		p.Depth = &d
	case int64:
		if v <= 0 {
			return Profile{}, fmt.Errorf("%w: depth must be a positive integer, got %d", ErrInvalidProfile, v)
		}
		d := uint(v)
		p.Depth = &d
	default:
		return Profile{}, fmt.Errorf("%w: depth must be a string or integer, got %T", ErrInvalidProfile, v)
	}

	if rp.FdType != nil {
		t, err := ParseEntryType(*rp.FdType)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		p.Type = &t
	}
	return p, nil
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// EnsureDefaultConfig writes SeedConfig to path unless a file already exists there.
// It reports whether the file was created. Concurrent callers are serialised on
// path+".lock" so only one of them writes.
func EnsureDefaultConfig(path string) (bool, error) {
	exists, err := fileExists(path)
	if err != nil || exists {
		return false, err
	}

	created := false
	err = filelock.WithLock(path+".lock", func() error {
		exists, err := fileExists(path)
		if err != nil || exists {
			return err
		}
		if err := filelock.AtomicWrite(path, []byte(SeedConfig), 0640); err != nil {
			return fmt.Errorf("failed to write config file %s: %w", path, err)
		}
		created = true
		return nil
	})
	return created, err
}

// WriteSeedConfig overwrites path with SeedConfig.
func WriteSeedConfig(path string) error {
	err := filelock.WithLock(path+".lock", func() error {
		return filelock.AtomicWrite(path, []byte(SeedConfig), 0640)
	})
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat config file %s: %w", path, err)
}
