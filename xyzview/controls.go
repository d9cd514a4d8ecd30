// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyzview provides interactive view controls for an [xyz.Camera]:
// orbiting around a target, panning and zooming, with optional
// spring damping so that motion eases out over several frames.
package xyzview

import (
	"math"

	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/xyz"
	"github.com/charmbracelet/harmonica"
)

// idleThreshold is the velocity below which an axis is considered at rest.
const idleThreshold = 1e-3

// Controls drives a camera from user input. Input methods accumulate
// motion, which is applied on the next call to [Controls.Update].
// It is not safe for concurrent use; owners serialize access.
type Controls struct {

	// Camera is the camera being controlled.
	Camera *xyz.Camera

	// Damping eases motion out over several frames instead of
	// applying it all on the next update.
	Damping bool

	// ScreenSpacePanning pans in the plane of the view,
	// instead of along the world X and Y axes.
	ScreenSpacePanning bool

	// MinDistance is the closest the camera may zoom to the target.
	MinDistance float32

	spring harmonica.Spring

	// orbit x, y; pan x, y; zoom
	axes [5]springAxis
}

const (
	orbitX = iota
	orbitY
	panX
	panY
	zoom
)

type springAxis struct {
	vel, accel float64
}

func (a *springAxis) idle() bool {
	return math.Abs(a.vel) < idleThreshold && math.Abs(a.accel) < idleThreshold
}

// NewControls returns controls for the given camera,
// with damping appropriate for the given frame rate.
// A frequency of 0 disables damping.
func NewControls(cam *xyz.Camera, fps int, frequency float64) *Controls {
	vc := &Controls{Camera: cam, ScreenSpacePanning: true, MinDistance: 0.05}
	vc.SetDamping(fps, frequency)
	return vc
}

// SetDamping configures the damping spring for the given frame rate and
// angular frequency. Higher frequencies settle faster. A frequency of 0,
// or a non-positive frame rate, disables damping.
func (vc *Controls) SetDamping(fps int, frequency float64) {
	if fps <= 0 || frequency <= 0 {
		vc.Damping = false
		return
	}
	vc.Damping = true
	vc.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, 1)
}

// Orbit adds an orbit of the given degrees left/right and up/down.
func (vc *Controls) Orbit(delX, delY float32) {
	vc.axes[orbitX].vel += float64(delX)
	vc.axes[orbitY].vel += float64(delY)
}

// Pan adds a pan of the given distance.
func (vc *Controls) Pan(delX, delY float32) {
	vc.axes[panX].vel += float64(delX)
	vc.axes[panY].vel += float64(delY)
}

// Zoom adds a zoom of the given fraction of the distance to the target.
// Negative values move closer.
func (vc *Controls) Zoom(pct float32) {
	vc.axes[zoom].vel += float64(pct)
}

// Idle returns true if there is no pending motion.
func (vc *Controls) Idle() bool {
	for i := range vc.axes {
		if !vc.axes[i].idle() {
			return false
		}
	}
	return true
}

// Stop discards any pending motion.
func (vc *Controls) Stop() {
	vc.axes = [5]springAxis{}
}

// SetTarget points the camera at the given target and discards any
// pending motion, so that the new framing is not disturbed.
func (vc *Controls) SetTarget(target math32.Vector3) {
	vc.Stop()
	if vc.Camera != nil {
		vc.Camera.LookAt(target, vc.Camera.UpDir)
	}
}

// Target returns the point the camera orbits around.
func (vc *Controls) Target() math32.Vector3 {
	if vc.Camera == nil {
		return math32.Vector3{}
	}
	return vc.Camera.Target
}

// Update applies pending motion to the camera for one frame and advances
// the damping. It returns true if the camera moved.
func (vc *Controls) Update() bool {
	if vc.Camera == nil || vc.Idle() {
		vc.Stop()
		return false
	}
	ax := &vc.axes
	cm := vc.Camera
	if !ax[orbitX].idle() || !ax[orbitY].idle() {
		cm.Orbit(float32(ax[orbitX].vel), float32(ax[orbitY].vel))
	}
	if !ax[panX].idle() || !ax[panY].idle() {
		if vc.ScreenSpacePanning {
			cm.Pan(float32(ax[panX].vel), float32(ax[panY].vel))
		} else {
			cm.PanAxis(float32(ax[panX].vel), float32(ax[panY].vel))
		}
	}
	if !ax[zoom].idle() {
		pct := float32(ax[zoom].vel)
		if pct < 0 && cm.ViewVector().Length()*(1+pct) < vc.MinDistance {
			ax[zoom] = springAxis{}
		} else {
			cm.Zoom(pct)
		}
		cm.LookAtTarget()
	}
	for i := range ax {
		a := &ax[i]
		if !vc.Damping {
			*a = springAxis{}
			continue
		}
		a.vel, a.accel = vc.spring.Update(a.vel, a.accel, 0)
		if a.idle() {
			*a = springAxis{}
		}
	}
	return true
}
