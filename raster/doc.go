// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster provides a software render target for xyz scenes
// and the [Surface] abstraction that rendered frames are presented to.
package raster
