// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"fdfzf/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dimColor is used for less important/secondary text in the CLI output
var dimColor = color.New(color.Faint)

// newConfigCommand is the parent command for all configuration-related subcommands.
func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialise the fdfzf configuration",
		Long: `Provides subcommands to locate, create and inspect the configuration file.
The file holds named profiles under [profiles.<name>], each setting any of
path, depth, fd_type and hidden.`,
	}

	cmd.AddCommand(newConfigPathCommand(opts))
	cmd.AddCommand(newConfigInitCommand(opts))
	cmd.AddCommand(newConfigProfilesCommand(opts))
	cmd.AddCommand(newConfigShowCommand(opts))
	return cmd
}

func newConfigPathCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := configFilePath(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file with a default profile",
		Long: `Writes a configuration file holding a single "default" profile with the
built-in settings. An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := configFilePath(opts)
			if err != nil {
				return err
			}

			if force {
				if err := config.WriteSeedConfig(path); err != nil {
					return err
				}
				printSuccess(cmd, "Configuration written to %s\n", path)
				return nil
			}

			created, err := config.EnsureDefaultConfig(path)
			if err != nil {
				return err
			}
			if created {
				printSuccess(cmd, "Configuration created at %s\n", path)
			} else {
				printStatus(cmd, "Configuration already exists at %s (use --force to overwrite)\n", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return cmd
}

func newConfigProfilesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles defined in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, path, err := loadConfigFile(opts)
			if err != nil {
				return err
			}

			names := f.ProfileNames()
			if len(names) == 0 {
				printStatus(cmd, "No profiles defined in %s\n", path)
				return nil
			}
			for _, name := range names {
				if name == config.DefaultProfileName {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", identifierColor.Sprint(name), dimColor.Sprint("(fallback for every profile)"))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), identifierColor.Sprint(name))
			}
			return nil
		},
	}
}

func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	var resolved bool
	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Print the configuration, one profile, or resolved settings as YAML",
		Long: `Without arguments prints the whole decoded configuration.
With a profile name prints only that profile. With --resolved prints the
settings a search would use for that profile (or for the default profile),
after falling back through the precedence chain and expanding "~".`,
		Example: `  fdfzf config show
  fdfzf config show work
  fdfzf config show work --resolved`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: profileArgCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadConfigFile(opts)
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			var doc any = f
			switch {
			case resolved:
				settings, err := config.Resolve(config.Overrides{}, f, name)
				if err != nil {
					return err
				}
				doc = settings
			case name != "":
				p, ok := f.Profile(name)
				if !ok {
					return fmt.Errorf("profile '%s' not found", name)
				}
				doc = map[string]config.Profile{name: p}
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&resolved, "resolved", false, "print the settings after resolution")
	return cmd
}
