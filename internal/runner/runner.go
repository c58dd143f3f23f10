// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runner builds and executes the search | selector process pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"unicode/utf8"

	"fdfzf/internal/config"
	"fdfzf/internal/logger"
	"fdfzf/internal/util"
)

// CommandStep is one external process of the pipeline.
type CommandStep struct {
	Name    string
	Command string
	Args    []string
}

func (s CommandStep) String() string {
	return util.JoinForShell(s.Command, s.Args...)
}

// RootNotFoundError reports a search root that does not exist.
type RootNotFoundError struct {
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("the directory does not exist: %s", e.Path)
}

// SpawnError reports a process that could not be started.
type SpawnError struct {
	Process string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Process, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// DecodeError reports selector output that is not valid UTF-8.
type DecodeError struct {
	Process string
	Output  []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("output of %s is not valid UTF-8 (%d bytes)", e.Process, len(e.Output))
}

// CancelledError reports a selector that exited unsuccessfully, which is how
// fzf signals that the user aborted or nothing matched.
type CancelledError struct {
	ExitCode int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("selection cancelled: exit status %d", e.ExitCode)
}

// CheckRoot returns a *RootNotFoundError when root does not exist.
func CheckRoot(root string) error {
	_, err := os.Stat(root)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &RootNotFoundError{Path: root}
	}
	return fmt.Errorf("failed to check search root %s: %w", root, err)
}

// SearchStep builds the fd invocation for s.
func SearchStep(s config.Settings, bin string) CommandStep {
	hidden := "--no-hidden"
	if s.Hidden {
		hidden = "--hidden"
	}
	return CommandStep{
		Name:    "search",
		Command: bin,
		Args: []string{
			".",
			"--type", string(s.Type),
			"--max-depth", strconv.FormatUint(uint64(s.MaxDepth), 10),
			hidden,
			s.Root,
		},
	}
}

// SelectorStep builds the fzf invocation.
func SelectorStep(bin string, args []string) CommandStep {
	return CommandStep{
		Name:    "selector",
		Command: bin,
		Args:    append([]string(nil), args...),
	}
}

// Pipeline pipes the search process into the selector process.
type Pipeline struct {
	Root     string
	Search   CommandStep
	Selector CommandStep

	// Stderr receives both processes' standard error. Nil means os.Stderr.
	Stderr io.Writer
}

// NewPipeline assembles the pipeline for s using the binaries named in cmds.
func NewPipeline(s config.Settings, cmds config.Commands) *Pipeline {
	defaults := config.DefaultCommands()
	if cmds.Search == "" {
		cmds.Search = defaults.Search
	}
	if cmds.Selector == "" {
		cmds.Selector = defaults.Selector
	}
	return &Pipeline{
		Root:     s.Root,
		Search:   SearchStep(s, cmds.Search),
		Selector: SelectorStep(cmds.Selector, cmds.SelectorArgs),
	}
}

// String renders the pipeline as a shell command line.
func (p *Pipeline) String() string {
	return p.Search.String() + " | " + p.Selector.String()
}

// Run checks the root, runs search | selector and writes the selection to out.
// Nothing is spawned when the root is missing. A cancelled selection returns a
// *CancelledError and writes nothing.
func (p *Pipeline) Run(ctx context.Context, out io.Writer) error {
	if err := CheckRoot(p.Root); err != nil {
		return err
	}

	logger.Debug("Starting pipeline", "command", p.String())

	selected, err := p.pipe(ctx)
	if err != nil {
		return err
	}

	if !utf8.Valid(selected) {
		return &DecodeError{Process: p.Selector.Command, Output: selected}
	}
	if _, err := out.Write(selected); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}
	return nil
}

func (p *Pipeline) stderr() io.Writer {
	if p.Stderr == nil {
		return os.Stderr
	}
	return p.Stderr
}
