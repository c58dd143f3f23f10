// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// shellSafe lists the characters that never need quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./-_"

// QuoteArgForShell quotes an argument for safe use in a POSIX shell command.
// Words made only of safe characters are returned as is; anything else is
// wrapped in single quotes with internal single quotes escaped.
func QuoteArgForShell(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.Trim(arg, shellSafe) == "" {
		return arg
	}
	return `'` + strings.ReplaceAll(arg, "'", `'\''`) + `'`
}

// JoinForShell renders a command and its arguments as one shell-ready line.
func JoinForShell(command string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArgForShell(command))
	for _, arg := range args {
		parts = append(parts, QuoteArgForShell(arg))
	}
	return strings.Join(parts, " ")
}
