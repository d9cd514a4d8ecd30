// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import "cogentcore.org/vrmview/base/errors"

var (
	// ErrNotInitialized is returned by operations that need a live scene
	// before [Viewer.InitializeScene] has been called.
	ErrNotInitialized = errors.New("avatar: viewer is not initialized")

	// ErrAlreadyInitialized is returned by [Viewer.InitializeScene]
	// on a viewer that is already live.
	ErrAlreadyInitialized = errors.New("avatar: viewer is already initialized")

	// ErrSuperseded is returned by [Viewer.LoadAvatar] when a later load
	// was requested before this one finished. The avatar is discarded.
	ErrSuperseded = errors.New("avatar: load superseded by a later request")

	// ErrClosed is returned by [Viewer.LoadAvatar] when the viewer was
	// torn down while the load was in progress.
	ErrClosed = errors.New("avatar: viewer was torn down")
)
