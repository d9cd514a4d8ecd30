// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package avatar manages the lifecycle of a viewport that shows one VRM
avatar at a time.

A [Viewer] owns a [SceneContext] (render target, camera, lights and view
controls), a render [Loop] that redraws the live scene on every display
refresh, and a [Slot] holding the currently displayed avatar. Loads run
on the caller's goroutine while the loop keeps rendering; the result of
the most recent request wins, and results that arrive after [Viewer.Teardown]
are released without being attached.

A [Framer] places the camera relative to a humanoid joint, by default
slightly above and in front of the head.
*/
package avatar
