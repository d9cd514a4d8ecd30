// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"
	"sync"

	"cogentcore.org/vrmview/math32"
	"golang.org/x/image/draw"
)

// Surface is a drawable area that rendered frames are presented to,
// such as a window, a canvas element or an in-memory image.
type Surface interface {

	// Size returns the logical size of the surface.
	Size() image.Point

	// PixelRatio returns the number of device pixels per logical pixel.
	PixelRatio() float32

	// Present displays the given frame, which is in device pixels.
	// The surface must not retain the image after returning.
	Present(frame *image.RGBA) error
}

// DeviceSize returns the size of the given surface in device pixels.
// A non-positive pixel ratio is treated as 1.
func DeviceSize(s Surface) image.Point {
	sz := s.Size()
	pr := s.PixelRatio()
	if pr <= 0 {
		pr = 1
	}
	return image.Pt(int(math32.Ceil(float32(sz.X)*pr)), int(math32.Ceil(float32(sz.Y)*pr)))
}

// Canvas is an in-memory [Surface]. Presented frames are scaled from
// device pixels down to the logical size.
// It is safe for concurrent use.
type Canvas struct {
	mu      sync.Mutex
	size    image.Point
	ratio   float32
	frame   *image.RGBA
	version int

	// Scaler is used to scale device pixels to logical pixels.
	Scaler draw.Scaler
}

// NewCanvas returns a new canvas with the given logical size and pixel ratio.
func NewCanvas(size image.Point, ratio float32) *Canvas {
	if ratio <= 0 {
		ratio = 1
	}
	return &Canvas{size: size, ratio: ratio, Scaler: draw.ApproxBiLinear}
}

// Size returns the logical size.
func (cv *Canvas) Size() image.Point {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.size
}

// PixelRatio returns the pixel ratio.
func (cv *Canvas) PixelRatio() float32 {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.ratio
}

// Resize sets a new logical size. Renderers pick it up on their next frame.
func (cv *Canvas) Resize(size image.Point) {
	cv.mu.Lock()
	cv.size = size
	cv.mu.Unlock()
}

// Present stores a logical-size copy of the frame.
func (cv *Canvas) Present(frame *image.RGBA) error {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	dst := image.NewRGBA(image.Rectangle{Max: cv.size})
	if frame.Bounds().Size() == cv.size {
		draw.Copy(dst, image.Point{}, frame, frame.Bounds(), draw.Src, nil)
	} else {
		cv.Scaler.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	}
	cv.frame = dst
	cv.version++
	return nil
}

// Frame returns the most recently presented frame, or nil if none.
func (cv *Canvas) Frame() *image.RGBA {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.frame
}

// Version returns the number of frames presented so far.
func (cv *Canvas) Version() int {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.version
}
