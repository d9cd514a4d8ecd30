// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"cogentcore.org/vrmview/math32"
)

// ErrReleased is returned when rendering into a released [Target].
var ErrReleased = errors.New("raster: render target released")

// Target is a software render target: a color framebuffer plus a depth
// buffer, rasterizing flat-shaded triangles given in normalized device
// coordinates. It implements [xyz.Renderer].
type Target struct {

	// Image is the color framebuffer, in device pixels.
	Image *image.RGBA

	// Drawn is the number of triangles that covered
	// at least one pixel in the current frame.
	Drawn int

	depth    []float32
	released bool
}

// NewTarget returns a new render target with the given size in device pixels.
func NewTarget(size image.Point) *Target {
	t := &Target{}
	t.Resize(size)
	return t
}

// Size returns the size of the target in device pixels.
func (t *Target) Size() image.Point {
	if t.Image == nil {
		return image.Point{}
	}
	return t.Image.Bounds().Size()
}

// Resize reallocates the buffers for the given size in device pixels,
// if it is different from the current size. Sizes are at least 1x1.
func (t *Target) Resize(size image.Point) {
	size.X = max(size.X, 1)
	size.Y = max(size.Y, 1)
	if t.Image != nil && t.Size() == size {
		return
	}
	t.Image = image.NewRGBA(image.Rectangle{Max: size})
	t.depth = make([]float32, size.X*size.Y)
}

// Begin starts a new frame, clearing color to bg and depth to the far plane.
func (t *Target) Begin(bg color.RGBA) error {
	if t.released {
		return ErrReleased
	}
	draw.Draw(t.Image, t.Image.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	n := len(t.depth)
	if n > 0 {
		t.depth[0] = 1
		for i := 1; i < n; i *= 2 {
			copy(t.depth[i:], t.depth[:i])
		}
	}
	t.Drawn = 0
	return nil
}

// End finishes the frame.
func (t *Target) End() error {
	if t.released {
		return ErrReleased
	}
	return nil
}

// toScreen maps a point in normalized device coordinates to pixel
// coordinates, with y increasing downward.
func (t *Target) toScreen(p math32.Vector3) (x, y float32) {
	sz := t.Size()
	return (p.X + 1) * 0.5 * float32(sz.X), (1 - p.Y) * 0.5 * float32(sz.Y)
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// DrawTriangle rasterizes one triangle with the given color, testing
// each pixel center against the depth buffer. Depths outside [-1, 1]
// are clipped per pixel.
func (t *Target) DrawTriangle(a, b, c math32.Vector3, clr color.RGBA) {
	if t.released {
		return
	}
	x0, y0 := t.toScreen(a)
	x1, y1 := t.toScreen(b)
	x2, y2 := t.toScreen(c)
	area := edge(x0, y0, x1, y1, x2, y2)
	if !(area < 0 || area > 0) { // zero or NaN
		return
	}
	sz := t.Size()
	if sz.X == 0 || sz.Y == 0 {
		return
	}
	// clamp in float32 before converting to int
	lastX, lastY := float32(sz.X-1), float32(sz.Y-1)
	minX := int(math32.Clamp(math32.Floor(min(x0, x1, x2)), 0, lastX))
	maxX := int(math32.Clamp(math32.Ceil(max(x0, x1, x2)), 0, lastX))
	minY := int(math32.Clamp(math32.Floor(min(y0, y1, y2)), 0, lastY))
	maxY := int(math32.Clamp(math32.Ceil(max(y0, y1, y2)), 0, lastY))

	covered := false
	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5
			w0 := edge(x1, y1, x2, y2, fx, fy) / area
			w1 := edge(x2, y2, x0, y0, fx, fy) / area
			w2 := edge(x0, y0, x1, y1, fx, fy) / area
			if !(w0 >= 0 && w1 >= 0 && w2 >= 0) {
				continue
			}
			z := w0*a.Z + w1*b.Z + w2*c.Z
			if !(z >= -1 && z <= 1) {
				continue
			}
			di := py*sz.X + px
			if z >= t.depth[di] {
				continue
			}
			t.depth[di] = z
			t.Image.SetRGBA(px, py, clr)
			covered = true
		}
	}
	if covered {
		t.Drawn++
	}
}

// Release frees the buffers. It is safe to call more than once;
// rendering into a released target fails with [ErrReleased].
func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	t.Image = nil
	t.depth = nil
}

// Released returns true if Release has been called.
func (t *Target) Released() bool {
	return t.released
}
