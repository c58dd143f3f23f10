// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.toml")

	require.NoError(t, AtomicWrite(path, []byte("first"), 0640))
	require.NoError(t, AtomicWrite(path, []byte("second"), 0640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWithLockSerialises(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "sub", "x.lock")

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(lockPath, func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				// Hold the lock long enough for an unserialised peer to overlap.
				time.Sleep(20 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestWithLockReturnsCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := WithLock(filepath.Join(t.TempDir(), "x.lock"), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}
