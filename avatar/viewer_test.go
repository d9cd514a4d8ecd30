// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrmview/math32"
	"cogentcore.org/vrmview/raster"
	"cogentcore.org/vrmview/vrm"
	"cogentcore.org/vrmview/vrm/vrmtest"
)

// gatedLoader blocks each load until its asset name is released.
type gatedLoader struct {
	started chan string
	gates   map[string]chan struct{}
	loaded  sync.Map
}

func newGatedLoader(names ...string) *gatedLoader {
	gl := &gatedLoader{started: make(chan string, len(names)), gates: map[string]chan struct{}{}}
	for _, nm := range names {
		gl.gates[nm] = make(chan struct{})
	}
	return gl
}

func (gl *gatedLoader) Load(ctx context.Context, asset *vrm.Asset) (*vrm.Avatar, error) {
	gl.started <- asset.Name
	<-gl.gates[asset.Name]
	av, err := (&vrm.Loader{}).Load(ctx, asset)
	if av != nil {
		gl.loaded.Store(asset.Name, av)
	}
	return av, err
}

func (gl *gatedLoader) avatar(name string) *vrm.Avatar {
	av, _ := gl.loaded.Load(name)
	if av == nil {
		return nil
	}
	return av.(*vrm.Avatar)
}

type testViewer struct {
	*Viewer
	canvas  *raster.Canvas
	refresh *ManualRefresher
	mu      sync.Mutex
	trace   []SlotEvent
}

func newTestViewer(t *testing.T, ld AvatarLoader) *testViewer {
	t.Helper()
	tv := &testViewer{
		Viewer:  NewViewer(nil),
		canvas:  raster.NewCanvas(image.Pt(64, 48), 1),
		refresh: NewManualRefresher(),
	}
	tv.Loader = ld
	tv.NewRefresher = func(fps int) Refresher { return tv.refresh }
	tv.SlotObserver = func(ev SlotEvent) {
		tv.mu.Lock()
		tv.trace = append(tv.trace, ev)
		tv.mu.Unlock()
	}
	require.NoError(t, tv.InitializeScene(tv.canvas))
	t.Cleanup(tv.Teardown)
	return tv
}

func (tv *testViewer) events() []SlotEvent {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	return append([]SlotEvent(nil), tv.trace...)
}

// step runs one frame and waits for it to finish.
func (tv *testViewer) step(t *testing.T) {
	t.Helper()
	n := tv.Frames()
	require.True(t, tv.refresh.Tick())
	require.Eventually(t, func() bool { return tv.Frames() > n }, time.Second, time.Millisecond)
}

func asset(name string) *vrm.Asset {
	return vrmtest.Asset(name, vrmtest.Options{Version: 1})
}

func loadedAvatar(st State) *vrm.Avatar {
	if ld, ok := st.(Loaded); ok {
		return ld.Avatar
	}
	return nil
}

func TestInitializeScene(t *testing.T) {
	tv := newTestViewer(t, nil)
	assert.True(t, tv.Live())
	assert.ErrorIs(t, tv.InitializeScene(tv.canvas), ErrAlreadyInitialized)

	cam, ok := tv.Camera()
	require.True(t, ok)
	assert.Equal(t, float32(30), cam.FOV)
	assert.Equal(t, float32(.1), cam.Near)
	assert.Equal(t, float32(20), cam.Far)
	assert.InDelta(t, 64.0/48.0, cam.Aspect, 1e-6)
	assert.Equal(t, math32.Vec3(0, 1, 5), cam.Pose.Pos)
	assert.Equal(t, Empty{}, tv.Current())

	tv.step(t)
	fr := tv.canvas.Frame()
	require.NotNil(t, fr)
	assert.Equal(t, image.Pt(64, 48), fr.Bounds().Size())
	assert.Equal(t, tv.Config.Background, fr.RGBAAt(10, 10))
}

func TestPixelRatio(t *testing.T) {
	v := NewViewer(nil)
	mr := NewManualRefresher()
	v.NewRefresher = func(int) Refresher { return mr }
	cv := raster.NewCanvas(image.Pt(40, 30), 2)
	require.NoError(t, v.InitializeScene(cv))
	defer v.Teardown()
	require.NoError(t, v.LoadAvatar(context.Background(), asset("a")))
	require.True(t, mr.Tick())
	require.Eventually(t, func() bool { return cv.Version() > 0 }, time.Second, time.Millisecond)
	assert.Equal(t, image.Pt(40, 30), cv.Frame().Bounds().Size())
	assert.Equal(t, 2, v.Stats().Triangles)

	// the render target follows the surface size
	cv.Resize(image.Pt(30, 30))
	require.True(t, mr.Tick())
	require.Eventually(t, func() bool { return cv.Version() > 1 }, time.Second, time.Millisecond)
	assert.Equal(t, image.Pt(30, 30), cv.Frame().Bounds().Size())
	cam, _ := v.Camera()
	assert.Equal(t, float32(1), cam.Aspect)
}

func TestNotInitialized(t *testing.T) {
	v := NewViewer(nil)
	assert.ErrorIs(t, v.LoadAvatar(context.Background(), asset("a")), ErrNotInitialized)
	assert.False(t, v.ResetCameraOnHead())
	assert.Equal(t, Empty{}, v.Current())
	_, ok := v.Camera()
	assert.False(t, ok)
	v.Orbit(1, 1)
	v.Teardown()
	assert.Zero(t, v.Frames())
	assert.Error(t, v.InitializeScene(nil))
}

func TestLoadFramesHead(t *testing.T) {
	tv := newTestViewer(t, nil)
	require.NoError(t, tv.LoadAvatar(context.Background(), asset("a")))
	av := loadedAvatar(tv.Current())
	require.NotNil(t, av)
	assert.Equal(t, "a", av.Name)

	cam, _ := tv.Camera()
	assert.True(t, math32.Vec3(0, 1.5, 1.5).IsEqualTol(cam.Pose.Pos, 1e-5), "camera at %v", cam.Pose.Pos)
	assert.True(t, math32.Vec3(0, 1, 0).IsEqualTol(cam.Target, 1e-5), "target %v", cam.Target)
	assert.True(t, math32.Vec3(0, 1, 0).IsEqualTol(tv.CameraTarget(), 1e-5))

	// the avatar is drawn on the next frame
	tv.step(t)
	assert.Equal(t, 2, tv.Stats().Triangles)
	fr := tv.canvas.Frame()
	require.NotNil(t, fr)
	drawn := 0
	for y := range fr.Bounds().Dy() {
		for x := range fr.Bounds().Dx() {
			if fr.RGBAAt(x, y) != tv.Config.Background {
				drawn++
			}
		}
	}
	assert.Positive(t, drawn)

	// orbiting moves the camera, and reset brings it back
	tv.Orbit(45, 10)
	tv.step(t)
	moved, _ := tv.Camera()
	assert.False(t, math32.Vec3(0, 1.5, 1.5).IsEqualTol(moved.Pose.Pos, 1e-3))
	assert.True(t, math32.Vec3(0, 1, 0).IsEqualTol(moved.Target, 1e-5), "orbit pivots on the head")
	require.True(t, tv.ResetCameraOnHead())
	cam, _ = tv.Camera()
	assert.True(t, math32.Vec3(0, 1.5, 1.5).IsEqualTol(cam.Pose.Pos, 1e-5))
}

func TestResetWithoutAvatar(t *testing.T) {
	tv := newTestViewer(t, nil)
	before, _ := tv.Camera()
	assert.False(t, tv.ResetCameraOnHead())
	assert.False(t, tv.FrameOnJoint("leftHand"))
	after, _ := tv.Camera()
	assert.Equal(t, before, after)
}

func TestLoadErrorKeepsCurrent(t *testing.T) {
	tv := newTestViewer(t, nil)
	require.NoError(t, tv.LoadAvatar(context.Background(), asset("a")))
	cur := loadedAvatar(tv.Current())
	require.NotNil(t, cur)
	n := len(tv.events())

	err := tv.LoadAvatar(context.Background(), vrm.AssetFromBytes("bad.vrm", vrmtest.NotGLB))
	assert.ErrorIs(t, err, vrm.ErrAssetParse)
	err = tv.LoadAvatar(context.Background(), vrmtest.Asset("plain.glb", vrmtest.Options{NoExtension: true}))
	assert.ErrorIs(t, err, vrm.ErrAssetIncompatible)
	err = tv.LoadAvatar(context.Background(), nil)
	assert.ErrorIs(t, err, vrm.ErrAssetParse)

	assert.Same(t, cur, loadedAvatar(tv.Current()))
	assert.False(t, cur.Released())
	assert.Len(t, tv.events(), n)
}

func TestLastRequestWins(t *testing.T) {
	for _, first := range []string{"a", "b"} {
		t.Run("finish "+first+" first", func(t *testing.T) {
			gl := newGatedLoader("a", "b")
			tv := newTestViewer(t, gl)
			errs := map[string]chan error{"a": make(chan error, 1), "b": make(chan error, 1)}
			for _, nm := range []string{"a", "b"} {
				go func() { errs[nm] <- tv.LoadAvatar(context.Background(), asset(nm)) }()
				require.Equal(t, nm, <-gl.started)
			}
			second := map[string]string{"a": "b", "b": "a"}[first]
			close(gl.gates[first])
			err1 := <-errs[first]
			close(gl.gates[second])
			err2 := <-errs[second]

			assert.ErrorIs(t, map[string]error{first: err1, second: err2}["a"], ErrSuperseded)
			assert.NoError(t, map[string]error{first: err1, second: err2}["b"])
			cur := loadedAvatar(tv.Current())
			require.NotNil(t, cur)
			assert.Equal(t, "b", cur.Name)
			assert.True(t, gl.avatar("a").Released())
			for _, ev := range tv.events() {
				assert.NotEqual(t, "a", ev.Avatar.Name, "superseded avatar touched the slot")
			}
		})
	}
}

func TestNoAttachAfterTeardown(t *testing.T) {
	gl := newGatedLoader("late")
	tv := newTestViewer(t, gl)
	errc := make(chan error, 1)
	go func() { errc <- tv.LoadAvatar(context.Background(), asset("late")) }()
	require.Equal(t, "late", <-gl.started)

	tv.Teardown()
	assert.False(t, tv.Live())
	close(gl.gates["late"])
	assert.ErrorIs(t, <-errc, ErrClosed)
	assert.True(t, gl.avatar("late").Released())
	assert.Equal(t, Empty{}, tv.Current())
	assert.Empty(t, tv.events())
	assert.False(t, tv.refresh.Tick(), "render loop still running")

	// teardown is idempotent
	tv.Teardown()
}

func TestReinitializeSupersedes(t *testing.T) {
	gl := newGatedLoader("old")
	tv := newTestViewer(t, gl)
	errc := make(chan error, 1)
	go func() { errc <- tv.LoadAvatar(context.Background(), asset("old")) }()
	require.Equal(t, "old", <-gl.started)

	tv.Teardown()
	tv.refresh = NewManualRefresher()
	require.NoError(t, tv.InitializeScene(tv.canvas))
	close(gl.gates["old"])
	assert.ErrorIs(t, <-errc, ErrSuperseded)
	assert.Equal(t, Empty{}, tv.Current())
}

func TestReleaseBeforeAttach(t *testing.T) {
	tv := newTestViewer(t, nil)
	for _, nm := range []string{"a", "b", "c"} {
		require.NoError(t, tv.LoadAvatar(context.Background(), asset(nm)))
		tv.step(t)
	}
	evs := tv.events()
	require.Len(t, evs, 7)
	var ops []string
	for _, ev := range evs {
		ops = append(ops, ev.Op.String()+" "+ev.Avatar.Name)
	}
	assert.Equal(t, []string{
		"Attach a",
		"Detach a", "Release a", "Attach b",
		"Detach b", "Release b", "Attach c",
	}, ops)
	assert.True(t, evs[0].Avatar.Released())
	assert.True(t, evs[3].Avatar.Released())
	assert.False(t, evs[6].Avatar.Released())

	tv.Teardown()
	assert.True(t, evs[6].Avatar.Released())
	assert.Len(t, tv.events(), 9)
}

func TestCanceledLoad(t *testing.T) {
	tv := newTestViewer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tv.LoadAvatar(ctx, asset("a")), context.Canceled)
	assert.Equal(t, Empty{}, tv.Current())
}

// emptyLoader reports success without producing an avatar.
type emptyLoader struct{}

func (emptyLoader) Load(ctx context.Context, asset *vrm.Asset) (*vrm.Avatar, error) {
	return nil, nil
}

func TestLoadNoAvatar(t *testing.T) {
	tv := newTestViewer(t, nil)
	require.NoError(t, tv.LoadAvatar(context.Background(), asset("a")))
	cur := loadedAvatar(tv.Current())
	require.NotNil(t, cur)
	n := len(tv.events())

	tv.Loader = emptyLoader{}
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, tv.LoadAvatar(context.Background(), asset("b")), vrm.ErrAssetParse)
	})
	assert.Same(t, cur, loadedAvatar(tv.Current()))
	assert.False(t, cur.Released())
	assert.Len(t, tv.events(), n)
}

func TestRenderDuringLoad(t *testing.T) {
	gl := newGatedLoader("a", "b")
	tv := newTestViewer(t, gl)
	close(gl.gates["a"])
	require.NoError(t, tv.LoadAvatar(context.Background(), asset("a")))
	require.Equal(t, "a", <-gl.started)
	cur := loadedAvatar(tv.Current())
	require.NotNil(t, cur)

	errc := make(chan error, 1)
	go func() { errc <- tv.LoadAvatar(context.Background(), asset("b")) }()
	require.Equal(t, "b", <-gl.started)
	for range 4 {
		tv.step(t)
		assert.Equal(t, 2, tv.Stats().Triangles)
		assert.Same(t, cur, loadedAvatar(tv.Current()))
	}

	close(gl.gates["b"])
	require.NoError(t, <-errc)
	next := loadedAvatar(tv.Current())
	require.NotNil(t, next)
	assert.Equal(t, "b", next.Name)
	assert.True(t, cur.Released())
	tv.step(t)
	assert.Equal(t, 2, tv.Stats().Triangles)
}

var errPresent = errors.New("surface lost")

// brokenSurface is a canvas that can no longer display frames.
type brokenSurface struct {
	*raster.Canvas
}

func (bs brokenSurface) Present(frame *image.RGBA) error {
	return errPresent
}

func TestFrameErrorLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	v := NewViewer(nil)
	mr := NewManualRefresher()
	v.NewRefresher = func(int) Refresher { return mr }
	require.NoError(t, v.InitializeScene(brokenSurface{raster.NewCanvas(image.Pt(16, 16), 1)}))
	defer v.Teardown()

	for i := range 2 {
		require.True(t, mr.Tick())
		require.Eventually(t, func() bool { return v.Frames() > int64(i) }, time.Second, time.Millisecond)
	}
	assert.True(t, v.Live(), "render loop keeps going after a frame error")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(errPresent.Error())))
	assert.Contains(t, buf.String(), "viewer.go")
}
