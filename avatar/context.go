// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"image"
	"image/color"
	"log/slog"

	"cogentcore.org/vrmview/raster"
	"cogentcore.org/vrmview/xyz"
	"cogentcore.org/vrmview/xyzview"
)

// SceneContext is everything needed to draw one viewport: the surface
// frames are presented to, the render target, the scene with its camera
// and lights, and the view controls driving the camera.
// It is not safe for concurrent use; the [Viewer] serializes access.
type SceneContext struct {

	// Surface is the drawable surface frames are presented to.
	Surface raster.Surface

	// Target is the render target, sized in device pixels.
	Target *raster.Target

	// Scene is the scene graph, camera and lights.
	Scene *xyz.Scene

	// Sun is the directional light.
	Sun *xyz.DirLight

	// Ambient is the ambient light.
	Ambient *xyz.AmbientLight

	// Controls drive the camera from user input.
	Controls *xyzview.Controls

	// Stats are from the most recent frame.
	Stats xyz.RenderStats

	released bool
}

// newSceneContext returns a scene context bound to the given surface.
func newSceneContext(s raster.Surface, cfg *Config) *SceneContext {
	white := color.RGBA{255, 255, 255, 255}
	sc := xyz.NewScene()
	sc.Background = cfg.Background

	cam := &sc.Camera
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.Aspect = aspect(s.Size())
	cam.Pose.Pos = cfg.CameraPos
	cam.LookAtOrigin()

	sun := xyz.NewDirLight(sc, "sun", cfg.LightLumens, white)
	sun.Pos = cfg.LightDir.Normal()
	amb := xyz.NewAmbientLight(sc, "ambient", cfg.AmbientLumens, white)

	ctrl := xyzview.NewControls(cam, cfg.FPS, cfg.DampingFrequency)
	ctrl.ScreenSpacePanning = cfg.ScreenSpacePanning

	dsz := raster.DeviceSize(s)
	slog.Debug("scene initialized", "size", s.Size(), "device", dsz, "ratio", s.PixelRatio())
	return &SceneContext{
		Surface:  s,
		Target:   raster.NewTarget(dsz),
		Scene:    sc,
		Sun:      sun,
		Ambient:  amb,
		Controls: ctrl,
	}
}

// aspect returns the width / height ratio of the given size, or 1 if empty.
func aspect(sz image.Point) float32 {
	if sz.X <= 0 || sz.Y <= 0 {
		return 1
	}
	return float32(sz.X) / float32(sz.Y)
}

// frame advances the view controls, renders the live scene graph
// and presents the result. The target follows surface size changes.
func (sc *SceneContext) frame() error {
	if sc.released {
		return raster.ErrReleased
	}
	if dsz := raster.DeviceSize(sc.Surface); dsz != sc.Target.Size() {
		sc.Target.Resize(dsz)
		sc.Scene.Camera.Aspect = aspect(sc.Surface.Size())
	}
	sc.Controls.Update()
	st, err := sc.Scene.Render(sc.Target)
	sc.Stats = st
	if err != nil {
		return err
	}
	return sc.Surface.Present(sc.Target.Image)
}

// release frees the scene and the render target. It is safe to call
// more than once.
func (sc *SceneContext) release() {
	if sc.released {
		return
	}
	sc.released = true
	sc.Controls.Stop()
	sc.Scene.Destroy()
	sc.Target.Release()
}
