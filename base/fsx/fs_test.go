// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "avatar.vrm")
	ok, err := FileExists(fn)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(fn, []byte("glTF"), 0666))
	ok, err = FileExists(fn)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "avatar.vrm")
	other := filepath.Join(dir, "other.vrm")
	require.NoError(t, os.WriteFile(fn, []byte("v1"), 0666))

	ctx, cancel := context.WithCancel(context.Background())
	var changes atomic.Int32
	errc := make(chan error, 1)
	go func() {
		errc <- WatchFile(ctx, fn, 20*time.Millisecond, func() { changes.Add(1) })
	}()
	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0666))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(fn, []byte("v2"), 0666))
	}
	assert.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchFile did not return after cancel")
	}
}
