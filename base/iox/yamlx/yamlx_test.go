// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name string `yaml:"name"`
	FPS  int    `yaml:"fps"`
}

func TestOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("name: viewer\nfps: 60\n"), 0o600))

	out := &testConfig{}
	require.NoError(t, Open(out, fn))
	assert.Equal(t, &testConfig{Name: "viewer", FPS: 60}, out)
	assert.Error(t, Open(out, filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestOpenOverrides(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("fps: 75\n"), 0o600))
	cfg := &testConfig{Name: "keep", FPS: 30}
	require.NoError(t, Open(cfg, fn))
	assert.Equal(t, "keep", cfg.Name)
	assert.Equal(t, 75, cfg.FPS)

	require.NoError(t, os.WriteFile(fn, nil, 0o600))
	require.NoError(t, Open(cfg, fn))
	assert.Equal(t, 75, cfg.FPS)
}
