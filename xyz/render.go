// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/vrmview/math32"
)

// Renderer is a render target that the scene draws into.
// Triangle vertices are given in normalized device coordinates:
// X and Y in [-1, 1] with +Y up, and Z in [-1, 1] from near to far.
type Renderer interface {

	// Begin starts a new frame, clearing it to the given background color.
	Begin(bg color.RGBA) error

	// DrawTriangle draws one flat-shaded triangle.
	DrawTriangle(a, b, c math32.Vector3, clr color.RGBA)

	// End finishes the frame.
	End() error
}

// RenderStats reports what happened during one call to [Scene.Render].
type RenderStats struct {

	// Triangles is the number of triangles passed to the renderer.
	Triangles int

	// Clipped is the number of triangles skipped because they were
	// not entirely in front of the camera.
	Clipped int
}

// Render draws the current state of the scene graph into the given renderer.
// World matrices are recomputed from the live tree on every call, so
// any change to the graph since the last frame is reflected.
func (sc *Scene) Render(r Renderer) (RenderStats, error) {
	var st RenderStats
	sc.Camera.UpdateMatrix()
	sc.Root.UpdateWorldMatrices(nil)
	if err := r.Begin(sc.Background); err != nil {
		return st, err
	}
	vp := &sc.Camera.ViewProjection
	sc.Root.WalkDown(func(n *Node) bool {
		ms := n.Mesh
		if ms == nil || ms.IsReleased() {
			return Continue
		}
		wm := &n.Pose.WorldMatrix
		nt := ms.NumTriangles()
		for i := range nt {
			a, b, c, ok := ms.Triangle(i)
			if !ok {
				continue
			}
			a = a.MulMatrix4AsPoint(wm)
			b = b.MulMatrix4AsPoint(wm)
			c = c.MulMatrix4AsPoint(wm)
			pa, wa := a.MulProjection(vp)
			pb, wb := b.MulProjection(vp)
			pc, wc := c.MulProjection(vp)
			if wa <= 0 || wb <= 0 || wc <= 0 {
				st.Clipped++
				continue
			}
			norm := b.Sub(a).Cross(c.Sub(a)).Normal()
			r.DrawTriangle(pa, pb, pc, sc.shade(ms.Color, norm))
			st.Triangles++
		}
		return Continue
	})
	return st, r.End()
}

// shade returns the base color lit by all lights that are on, for a
// surface with the given world-space normal. Triangles are lit from both sides.
func (sc *Scene) shade(base color.RGBA, norm math32.Vector3) color.RGBA {
	var lum math32.Vector3
	for _, kv := range sc.Lights.Order {
		lb := kv.Value.AsLightBase()
		if !lb.On {
			continue
		}
		switch lt := kv.Value.(type) {
		case *AmbientLight:
			lum.SetAdd(lt.intensity(1))
		case *DirLight:
			lum.SetAdd(lt.intensity(math32.Abs(norm.Dot(lt.ViewDir()))))
		}
	}
	ch := func(c uint8, l float32) uint8 {
		return uint8(math32.Clamp(float32(c)*l, 0, 255))
	}
	return color.RGBA{ch(base.R, lum.X), ch(base.G, lum.Y), ch(base.B, lum.Z), base.A}
}
