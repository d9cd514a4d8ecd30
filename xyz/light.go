// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/vrmview/math32"
)

// Light represents a light that illuminates a scene.
// These are stored on the overall scene object and not within the graph.
type Light interface {

	// AsLightBase returns the LightBase for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name of light, for lookup by name
	Name string

	// whether light is on or off
	On bool

	// brightness / intensity / strength of the light, in normalized 0-1 units.
	// Just scale down color of light to get dimmer lights.
	Lumens float32

	// color of light at full intensity
	Color color.RGBA
}

// AsLightBase returns the [LightBase] for this Light.
func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// intensity returns the per-channel contribution of this light,
// scaled by the given factor.
func (lb *LightBase) intensity(factor float32) math32.Vector3 {
	s := lb.Lumens * factor
	return math32.Vec3(float32(lb.Color.R)/255*s, float32(lb.Color.G)/255*s, float32(lb.Color.B)/255*s)
}

// AmbientLight provides diffuse uniform lighting; typically only one of these in a Scene
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds Ambient to given scene, with given name, standard color, and lumens (0-1 normalized)
func NewAmbientLight(sc *Scene, name string, lumens float32, clr color.RGBA) *AmbientLight {
	lt := &AmbientLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	sc.AddLight(lt)
	return lt
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
// For rendering, the position is negated and normalized to get the direction
// vector (i.e., absolute distance doesn't matter).
type DirLight struct {
	LightBase

	// position of direct light, assumed to point at the origin,
	// so this determines direction
	Pos math32.Vector3
}

// NewDirLight adds direct light to given scene, with given name, standard color, and lumens (0-1 normalized).
// By default it is located overhead and toward the default camera (0, 1, 1).
func NewDirLight(sc *Scene, name string, lumens float32, clr color.RGBA) *DirLight {
	lt := &DirLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	lt.Pos.Set(0, 1, 1)
	sc.AddLight(lt)
	return lt
}

// ViewDir gets the direction normal vector, pointing from the origin
// toward the light.
func (dl *DirLight) ViewDir() math32.Vector3 {
	return dl.Pos.Normal()
}
