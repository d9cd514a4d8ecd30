// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vrm loads VRM humanoid avatars into xyz scene graphs.

A .vrm file is a binary glTF container with either the VRMC_vrm (VRM 1.0)
or the VRM (VRM 0.x) extension, which maps humanoid bones to glTF nodes.
A [Loader] decodes an [Asset] into an [Avatar], normalizing bone names to
the VRM 1.0 set and rotating VRM 0.x avatars to face +Z.
*/
package vrm
