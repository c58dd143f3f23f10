// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fdfzf/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	warnColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
)

// rootOptions holds the values bound to the root command's flags.
type rootOptions struct {
	configPath string
	profile    string
	verbose    bool
	logFile    string

	entryType    string
	depth        string
	hidden       bool
	quietCancel  bool
	printCommand bool
}

// NewRootCommand creates the fdfzf command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fdfzf [path]",
		Short: "Fuzzy-pick a file or directory found by fd",
		Long: `fdfzf runs fd under a search root, pipes the entries into fzf and prints
the entry you pick.

Search settings are taken from, in order: command-line flags, the profile
named with --profile, the "default" profile, and built-in defaults
(path "~", depth 4, type d, no hidden entries). Profiles live in
~/.config/fdfzf/config.toml, which is created on first run.

A search root named like a subcommand (config, completion, help) runs that
subcommand instead; write it as ./config to search the directory.`,
		Example: `  cd "$(fdfzf)"
  fdfzf ~/src -t f -d 6
  fdfzf -p work --hidden`,
		Version:           Version,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: rootPathCompletion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.InitLogger(logger.Options{Verbose: opts.verbose, File: opts.logFile})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to the configuration file")
	pf.StringVarP(&opts.profile, "profile", "p", "", "profile from the configuration file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.StringVar(&opts.logFile, "log-file", "", "append JSON logs to this file")

	f := cmd.Flags()
	f.StringVarP(&opts.entryType, "type", "t", "", "entry type to search for: d (directories) or f (files) (default d)")
	f.StringVarP(&opts.depth, "depth", "d", "", "maximum search depth (default 4)")
	f.BoolVarP(&opts.hidden, "hidden", "H", false, "include hidden files and directories")
	f.BoolVar(&opts.quietCancel, "quiet-cancel", true, "print nothing when the selection is cancelled")
	f.BoolVar(&opts.printCommand, "print-command", false, "print the fd | fzf pipeline instead of running it")

	cmd.AddCommand(newConfigCommand(opts))
	registerFlagCompletions(cmd, opts)

	return cmd
}

// RunCLI executes the root command and exits non-zero on failure.
func RunCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printStatus(cmd *cobra.Command, format string, a ...any) {
	statusColor.Fprintf(cmd.ErrOrStderr(), format, a...)
}

func printSuccess(cmd *cobra.Command, format string, a ...any) {
	successColor.Fprintf(cmd.OutOrStdout(), format, a...)
}

func printWarning(cmd *cobra.Command, format string, a ...any) {
	warnColor.Fprintf(cmd.ErrOrStderr(), format, a...)
}

// usageError marks an invalid flag value.
func usageError(flag string, err error) error {
	return fmt.Errorf("invalid --%s: %w", flag, err)
}
