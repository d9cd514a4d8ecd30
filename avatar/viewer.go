// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/vrmview/base/errors"
	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/raster"
	"cogentcore.org/vrmview/vrm"
	"cogentcore.org/vrmview/xyz"
)

// AvatarLoader loads avatar assets. [vrm.Loader] is the standard one.
type AvatarLoader interface {
	Load(ctx context.Context, asset *vrm.Asset) (*vrm.Avatar, error)
}

// Viewer is a viewport showing at most one avatar. It is the entry
// point for the surrounding application: initialize it with a surface,
// load avatars into it, reset the camera, and tear it down when done.
// All methods are safe for concurrent use.
type Viewer struct {

	// Config holds the settings. It must not be changed while the
	// viewer is live.
	Config *Config

	// Loader, if set, replaces the standard [vrm.Loader].
	Loader AvatarLoader

	// NewRefresher, if set, returns the refresher for the render loop
	// instead of a [Ticker] at Config.FPS.
	NewRefresher func(fps int) Refresher

	// SlotObserver, if set, is called for each step of every avatar change.
	SlotObserver func(ev SlotEvent)

	mu     sync.Mutex
	live   bool
	seq    uint64
	sc     *SceneContext
	slot   *Slot
	loop   *Loop
	framer Framer
}

// NewViewer returns a new viewer with the given config,
// or default settings if cfg is nil.
func NewViewer(cfg *Config) *Viewer {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Viewer{Config: cfg}
}

// InitializeScene creates the scene context for the given surface
// and starts the render loop. It returns [ErrAlreadyInitialized] if
// the viewer is already live. A viewer can be initialized again after
// [Viewer.Teardown].
func (v *Viewer) InitializeScene(s raster.Surface) error {
	if s == nil {
		return errors.New("avatar: nil surface")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.live {
		return ErrAlreadyInitialized
	}
	if v.Config == nil {
		v.Config = NewConfig()
	}
	v.sc = newSceneContext(s, v.Config)
	v.slot = NewSlot(v.sc.Scene)
	v.slot.Observer = v.SlotObserver
	v.framer = Framer{Offset: v.Config.HeadOffset}
	v.live = true
	var r Refresher
	if v.NewRefresher != nil {
		r = v.NewRefresher(v.Config.FPS)
	} else {
		r = NewTicker(v.Config.FPS)
	}
	v.loop = StartLoop(r, v.renderFrame)
	return nil
}

// renderFrame is one iteration of the render loop.
func (v *Viewer) renderFrame() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.live {
		return
	}
	errors.Log(v.sc.frame())
}

// Teardown stops the render loop, releases the current avatar and frees
// the render target. Loads still in progress are discarded when they
// finish. It is safe to call more than once.
func (v *Viewer) Teardown() {
	v.mu.Lock()
	if !v.live {
		v.mu.Unlock()
		return
	}
	v.live = false
	v.seq++
	sc, slot, loop := v.sc, v.slot, v.loop
	v.sc, v.slot, v.loop = nil, nil, nil
	v.mu.Unlock()

	// the loop takes the lock for each frame, so it is stopped unlocked
	loop.Stop()
	slot.Clear()
	sc.release()
	slog.Debug("scene torn down", "frames", loop.Frames())
}

// Live returns true between [Viewer.InitializeScene] and [Viewer.Teardown].
func (v *Viewer) Live() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.live
}

// LoadAvatar loads the given asset and, if this is still the most recent
// load request and the viewer is still live, replaces the current avatar
// with it and frames the camera on the configured joint. The render loop
// keeps drawing the previous avatar while the asset is decoded.
//
// On failure the current avatar is left as it was, and the error wraps
// [vrm.ErrAssetParse] or [vrm.ErrAssetIncompatible]. A load overtaken by
// a later request returns [ErrSuperseded], and one finishing after
// teardown returns [ErrClosed]; in both cases the avatar is released.
func (v *Viewer) LoadAvatar(ctx context.Context, asset *vrm.Asset) error {
	if asset == nil {
		return fmt.Errorf("%w: nil asset", vrm.ErrAssetParse)
	}
	v.mu.Lock()
	if !v.live {
		v.mu.Unlock()
		return ErrNotInitialized
	}
	v.seq++
	seq := v.seq
	ld := v.Loader
	v.mu.Unlock()

	if ld == nil {
		ld = progressLoader(asset.Name)
	}
	slog.Info("loading avatar", "asset", asset.Name, "request", seq)
	av, err := ld.Load(ctx, asset)
	if err != nil {
		slog.Warn("avatar load failed", "asset", asset.Name, "request", seq, "err", err)
		return err
	}
	if av == nil {
		return fmt.Errorf("%w: loader returned no avatar", vrm.ErrAssetParse)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case !v.live:
		av.Release()
		slog.Debug("avatar discarded after teardown", "asset", asset.Name, "request", seq)
		return ErrClosed
	case seq != v.seq:
		av.Release()
		slog.Debug("avatar superseded", "asset", asset.Name, "request", seq, "latest", v.seq)
		return ErrSuperseded
	}
	v.slot.Replace(av)
	v.framer.FrameOnJoint(v.slot.Current(), v.Config.Joint, v.sc.Controls)
	slog.Info("avatar loaded", "asset", asset.Name, "title", av.Meta.Title, "version", av.Meta.SpecVersion)
	return nil
}

// progressLoader returns a [vrm.Loader] that logs progress for the named asset.
func progressLoader(name string) *vrm.Loader {
	return &vrm.Loader{Progress: func(pct float32) {
		slog.Debug("loading avatar", "asset", name, "progress", fmt.Sprintf("%.0f%%", pct))
	}}
}

// ResetCameraOnHead frames the camera on the head of the current avatar.
// It returns false, leaving the camera unchanged, if there is no avatar
// or it has no head.
func (v *Viewer) ResetCameraOnHead() bool {
	return v.FrameOnJoint(string(vrm.Head))
}

// FrameOnJoint frames the camera on the given joint of the current avatar.
// It returns false, leaving the camera unchanged, if there is no avatar
// or it has no such joint.
func (v *Viewer) FrameOnJoint(joint string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.live {
		return false
	}
	_, ok := v.framer.FrameOnJoint(v.slot.Current(), joint, v.sc.Controls)
	return ok
}

// Current returns the state of the avatar slot.
func (v *Viewer) Current() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.slot == nil {
		return Empty{}
	}
	return v.slot.Current()
}

// Camera returns a copy of the current camera, and false if the viewer
// is not live.
func (v *Viewer) Camera() (xyz.Camera, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.live {
		return xyz.Camera{}, false
	}
	return v.sc.Scene.Camera, true
}

// Orbit orbits the camera around its target by the given degrees.
func (v *Viewer) Orbit(delX, delY float32) {
	v.withControls(func(sc *SceneContext) { sc.Controls.Orbit(delX, delY) })
}

// Pan pans the camera and its target by the given distance.
func (v *Viewer) Pan(delX, delY float32) {
	v.withControls(func(sc *SceneContext) { sc.Controls.Pan(delX, delY) })
}

// Zoom moves the camera toward (negative) or away from (positive) its
// target by the given fraction of the distance.
func (v *Viewer) Zoom(pct float32) {
	v.withControls(func(sc *SceneContext) { sc.Controls.Zoom(pct) })
}

func (v *Viewer) withControls(fun func(sc *SceneContext)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.live {
		fun(v.sc)
	}
}

// Frames returns the number of frames rendered since the scene was
// initialized, or 0 if the viewer is not live.
func (v *Viewer) Frames() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loop == nil {
		return 0
	}
	return v.loop.Frames()
}

// Stats returns the render statistics of the most recent frame.
func (v *Viewer) Stats() xyz.RenderStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sc == nil {
		return xyz.RenderStats{}
	}
	return v.sc.Stats
}

// CameraTarget returns the orbit target of the view controls.
func (v *Viewer) CameraTarget() math32.Vector3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sc == nil {
		return math32.Vector3{}
	}
	return v.sc.Controls.Target()
}
