// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
	"testing"

	"cogentcore.org/vrmview/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordRenderer struct {
	frames int
	bg     color.RGBA
	tris   [][3]math32.Vector3
	colors []color.RGBA
}

func (rr *recordRenderer) Begin(bg color.RGBA) error {
	rr.frames++
	rr.bg = bg
	rr.tris = nil
	rr.colors = nil
	return nil
}

func (rr *recordRenderer) DrawTriangle(a, b, c math32.Vector3, clr color.RGBA) {
	rr.tris = append(rr.tris, [3]math32.Vector3{a, b, c})
	rr.colors = append(rr.colors, clr)
}

func (rr *recordRenderer) End() error { return nil }

func quadNode(name string, z float32) *Node {
	n := NewNode(name)
	n.Mesh = NewMesh(name, []math32.Vector3{
		{X: -0.5, Y: -0.5, Z: z}, {X: 0.5, Y: -0.5, Z: z}, {X: 0.5, Y: 0.5, Z: z}, {X: -0.5, Y: 0.5, Z: z},
	}, []uint32{0, 1, 2, 0, 2, 3})
	n.Mesh.Color = color.RGBA{255, 255, 255, 255}
	return n
}

func TestRenderLiveGraph(t *testing.T) {
	sc := NewScene()
	NewAmbientLight(sc, "ambient", 0.5, color.RGBA{255, 255, 255, 255})
	q := quadNode("quad", 0)
	sc.Add(q)

	rr := &recordRenderer{}
	st, err := sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Triangles)
	assert.Equal(t, sc.Background, rr.bg)
	assert.Equal(t, color.RGBA{127, 127, 127, 255}, rr.colors[0])
	first := rr.tris[0]

	// changes to the graph are visible on the next frame
	q.Pose.Pos.Set(0.5, 0, 0)
	_, err = sc.Render(rr)
	require.NoError(t, err)
	assert.Greater(t, rr.tris[0][0].X, first[0].X)

	assert.True(t, sc.Remove(q))
	st, err = sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Triangles)
	assert.Equal(t, 3, rr.frames)
}

func TestRenderClipsBehindCamera(t *testing.T) {
	sc := NewScene()
	sc.Add(quadNode("behind", 10))
	rr := &recordRenderer{}
	st, err := sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Triangles)
	assert.Equal(t, 2, st.Clipped)
}

func TestRenderDirLight(t *testing.T) {
	sc := NewScene()
	dl := NewDirLight(sc, "sun", 1, color.RGBA{255, 255, 255, 255})
	dl.Pos.Set(0, 0, 1)
	sc.Add(quadNode("quad", 0))

	rr := &recordRenderer{}
	_, err := sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rr.colors[0])

	// edge-on light contributes nothing
	dl.Pos.Set(1, 0, 0)
	_, err = sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rr.colors[0])

	dl.On = false
	dl.Pos.Set(0, 0, 1)
	_, err = sc.Render(rr)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rr.colors[0])
}

func TestSceneDestroy(t *testing.T) {
	sc := NewScene()
	NewAmbientLight(sc, "ambient", 0.5, color.RGBA{255, 255, 255, 255})
	a := quadNode("a", 0)
	b := quadNode("b", 0)
	a.AddChild(b)
	sc.Add(a)
	assert.Equal(t, 2, sc.NumMeshes())
	assert.True(t, sc.Contains(b))

	sc.Destroy()
	assert.True(t, a.Mesh.IsReleased())
	assert.True(t, b.Mesh.IsReleased())
	assert.False(t, sc.Contains(a))
	assert.Equal(t, 0, sc.Lights.Len())

	// releasing again is harmless
	ReleaseMeshes(a)
	assert.Equal(t, 0, a.Mesh.NumTriangles())
}
