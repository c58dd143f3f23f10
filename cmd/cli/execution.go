// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"

	"fdfzf/internal/config"
	"fdfzf/internal/logger"
	"fdfzf/internal/runner"

	"github.com/spf13/cobra"
)

// configFilePath returns the file to read and whether it was given explicitly.
func configFilePath(opts *rootOptions) (string, bool, error) {
	if opts.configPath != "" {
		path, err := config.ExpandTilde(opts.configPath)
		return path, true, err
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "", false, fmt.Errorf("failed to determine default config path: %w", err)
	}
	return path, false, nil
}

// loadConfigFile reads the explicit --config file, or the default file after
// seeding it on first run. A missing explicit file is an error.
func loadConfigFile(opts *rootOptions) (*config.File, string, error) {
	path, explicit, err := configFilePath(opts)
	if err != nil {
		return nil, "", err
	}

	if !explicit {
		created, err := config.EnsureDefaultConfig(path)
		if err != nil {
			return nil, path, err
		}
		if created {
			logger.Info("Created default configuration", "path", path)
		}
	}

	f, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	logger.Debug("Loaded configuration", "path", path, "profiles", f.ProfileNames())
	return f, path, nil
}

// overrides collects the settings given on the command line. Flags the user
// did not pass stay nil so profiles can fill them in.
func overrides(cmd *cobra.Command, args []string, opts *rootOptions) (config.Overrides, error) {
	var o config.Overrides
	if len(args) == 1 {
		o.Path = &args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		t, err := config.ParseEntryType(opts.entryType)
		if err != nil {
			return o, usageError("type", err)
		}
		o.Type = &t
	}
	if flags.Changed("depth") {
		d, err := config.ParseDepth(opts.depth)
		if err != nil {
			return o, usageError("depth", err)
		}
		o.Depth = &d
	}
	if flags.Changed("hidden") {
		hidden := opts.hidden
		o.Hidden = &hidden
	}
	return o, nil
}

// quietCancel reports whether a cancelled selection should be silent.
// The flag wins over the config file's quiet_cancel.
func quietCancel(cmd *cobra.Command, f *config.File, opts *rootOptions) bool {
	if cmd.Flags().Changed("quiet-cancel") {
		return opts.quietCancel
	}
	return f.QuietCancelOr(true)
}

// resolveSettings loads the configuration and resolves the search settings.
func resolveSettings(cmd *cobra.Command, args []string, opts *rootOptions) (*config.File, config.Settings, error) {
	o, err := overrides(cmd, args, opts)
	if err != nil {
		return nil, config.Settings{}, err
	}

	f, _, err := loadConfigFile(opts)
	if err != nil {
		return nil, config.Settings{}, err
	}

	if opts.profile != "" {
		if _, ok := f.Profile(opts.profile); !ok {
			logger.Warn("Profile not found, falling back to defaults", "profile", opts.profile)
		}
	}

	settings, err := config.Resolve(o, f, opts.profile)
	if err != nil {
		return nil, config.Settings{}, err
	}
	logger.Debug("Resolved settings",
		"root", settings.Root,
		"max_depth", settings.MaxDepth,
		"type", settings.Type,
		"hidden", settings.Hidden)
	return f, settings, nil
}

// runSearch resolves the settings, runs fd | fzf and prints the selection.
func runSearch(cmd *cobra.Command, args []string, opts *rootOptions) error {
	f, settings, err := resolveSettings(cmd, args, opts)
	if err != nil {
		return err
	}

	pipeline := runner.NewPipeline(settings, f.Commands)
	if opts.printCommand {
		fmt.Fprintln(cmd.OutOrStdout(), pipeline.String())
		return nil
	}
	pipeline.Stderr = cmd.ErrOrStderr()

	err = pipeline.Run(cmd.Context(), cmd.OutOrStdout())
	var cancelled *runner.CancelledError
	if errors.As(err, &cancelled) {
		logger.Info("Selection cancelled", "exit_code", cancelled.ExitCode)
		if !quietCancel(cmd, f, opts) {
			printWarning(cmd, "The command failed: exit status %d\n", cancelled.ExitCode)
		}
		return nil
	}
	if err != nil {
		logger.Error("Pipeline failed", "error", err)
	}
	return err
}
