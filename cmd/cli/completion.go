// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"fdfzf/internal/config"

	"github.com/spf13/cobra"
)

// profilesForCompletion lists profile names starting with toComplete.
// It never creates the default file; completion must not have side effects.
func profilesForCompletion(opts *rootOptions, toComplete string) []string {
	path, _, err := configFilePath(opts)
	if err != nil {
		return nil
	}
	f, err := config.Load(path)
	if err != nil {
		return nil
	}

	var suggestions []string
	for _, name := range f.ProfileNames() {
		if strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions
}

// profileArgCompletion completes a single positional profile name.
func profileArgCompletion(opts *rootOptions) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return profilesForCompletion(opts, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// rootPathCompletion offers directories for the search root.
func rootPathCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// registerFlagCompletions wires dynamic completion for the root command's flags.
func registerFlagCompletions(cmd *cobra.Command, opts *rootOptions) {
	_ = cmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return profilesForCompletion(opts, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{"d\tdirectories", "f\tfiles"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("depth", cobra.NoFileCompletions)
	_ = cmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
