// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"fdfzf/internal/logger"
)

const (
	// selectorWaitDelay bounds how long an interrupted selector may take to exit.
	selectorWaitDelay = 2 * time.Second
	// interruptExitCode is reported when the selector exits 0 after an interrupt.
	interruptExitCode = 130
)

// pipe starts both processes joined by an OS pipe and returns whatever the
// selector wrote to stdout once it exits. The parent never reads the pipe.
func (p *Pipeline) pipe(ctx context.Context) ([]byte, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}

	search := exec.CommandContext(ctx, p.Search.Command, p.Search.Args...)
	search.Stdout = pw
	search.Stderr = p.stderr()
	if err := search.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, &SpawnError{Process: p.Search.Command, Err: err}
	}
	// The selector sees EOF only once every copy of the write end is closed.
	pw.Close()

	var selected bytes.Buffer
	selector := exec.CommandContext(ctx, p.Selector.Command, p.Selector.Args...)
	// The selector owns the terminal; interrupt it so it can restore the
	// screen, and only kill it if it ignores the interrupt.
	selector.Cancel = func() error { return selector.Process.Signal(os.Interrupt) }
	selector.WaitDelay = selectorWaitDelay
	selector.Stdin = pr
	selector.Stdout = &selected
	selector.Stderr = p.stderr()
	err = selector.Start()
	pr.Close()
	if err != nil {
		stopLocalCommand(search, p.Search.Name)
		return nil, &SpawnError{Process: p.Selector.Command, Err: err}
	}

	waitErr := selector.Wait()
	stopLocalCommand(search, p.Search.Name)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			logger.Debug("Selector exited unsuccessfully", "exit_code", exitErr.ExitCode())
			return nil, &CancelledError{ExitCode: exitErr.ExitCode()}
		}
		// An interrupted selector that still exited 0 is an aborted selection.
		if ctx.Err() != nil {
			logger.Debug("Selector interrupted", "error", waitErr)
			return nil, &CancelledError{ExitCode: interruptExitCode}
		}
		return nil, fmt.Errorf("%s failed: %w", p.Selector.Command, waitErr)
	}

	return selected.Bytes(), nil
}

// stopLocalCommand kills cmd if it is still running and reaps it.
// Its exit status is only logged: a search cut short by the selector
// exiting is expected.
func stopLocalCommand(cmd *exec.Cmd, name string) {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		logger.Debug("Could not kill process", "step", name, "error", err)
	}
	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		logger.Debug("Process ended", "step", name, "exit_code", exitCode, "error", err)
	}
}
