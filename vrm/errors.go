// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import "errors"

var (
	// ErrAssetParse means the asset is not a readable binary glTF file.
	ErrAssetParse = errors.New("vrm: cannot parse asset")

	// ErrAssetIncompatible means the asset is valid glTF but lacks the VRM
	// humanoid extension, or does not map all required bones.
	ErrAssetIncompatible = errors.New("vrm: asset is not a compatible VRM humanoid")

	// ErrAssetConsumed means the asset has already been read by a load attempt.
	ErrAssetConsumed = errors.New("vrm: asset already consumed")
)
