// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xyz provides a small 3D scenegraph for viewing avatars.

The scenegraph is rooted at the Root [Node] of a [Scene]. Every Node has
a [Pose] relative to its parent, and optionally a [Mesh] of indexed
triangles. World transforms are composed from the parent chain.

The Scene also holds the [Camera] and the lights for rendering.
[Scene.Render] walks the live graph on every call, projects each triangle
through the camera, shades it with the lights and passes it to a
[Renderer], such as the software rasterizer in the raster package.
*/
package xyz
