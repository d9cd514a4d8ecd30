// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string
	FPS   int
	Scale float32
}

func TestOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(fn, []byte("Name = \"viewer\"\nFPS = 60\nScale = 2.0\n"), 0o600))

	out := &testConfig{}
	require.NoError(t, Open(out, fn))
	assert.Equal(t, &testConfig{Name: "viewer", FPS: 60, Scale: 2}, out)
}

func TestOpenOverrides(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(fn, []byte("FPS = 120\n"), 0o600))
	cfg := &testConfig{Name: "keep", FPS: 30}
	require.NoError(t, Open(cfg, fn))
	assert.Equal(t, "keep", cfg.Name)
	assert.Equal(t, 120, cfg.FPS)

	require.NoError(t, os.WriteFile(fn, []byte("FPS = \"fast\"\n"), 0o600))
	assert.Error(t, Open(cfg, fn))
	assert.Error(t, Open(cfg, filepath.Join(t.TempDir(), "missing.toml")))
}
