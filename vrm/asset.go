// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Asset is an opaque binary avatar file supplied by the user.
// It can be opened exactly once; each load attempt needs its own Asset.
// It is safe for concurrent use.
type Asset struct {

	// Name is the display name, typically the file name.
	Name string

	// Size is the size in bytes, or -1 if unknown.
	Size int64

	mu       sync.Mutex
	open     func() (io.ReadCloser, error)
	consumed bool
}

// NewAsset returns an asset reading from r, with the given size
// (-1 if unknown). If r is an [io.Closer], it is closed after reading.
func NewAsset(name string, size int64, r io.Reader) *Asset {
	return &Asset{Name: name, Size: size, open: func() (io.ReadCloser, error) {
		if rc, ok := r.(io.ReadCloser); ok {
			return rc, nil
		}
		return io.NopCloser(r), nil
	}}
}

// AssetFromBytes returns an asset over the given bytes.
func AssetFromBytes(name string, b []byte) *Asset {
	return NewAsset(name, int64(len(b)), bytes.NewReader(b))
}

// OpenAsset returns an asset for the file at the given path.
// The file is not opened until the asset is loaded.
func OpenAsset(path string) (*Asset, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Asset{Name: filepath.Base(path), Size: st.Size(), open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}, nil
}

// Open returns the contents of the asset, which the caller must close.
// It fails with [ErrAssetConsumed] if the asset was already opened.
func (a *Asset) Open() (io.ReadCloser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.consumed {
		return nil, ErrAssetConsumed
	}
	a.consumed = true
	return a.open()
}

// Consumed returns true if the asset has been opened.
func (a *Asset) Consumed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.consumed
}
