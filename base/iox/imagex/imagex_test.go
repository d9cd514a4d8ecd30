// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".PNG")
	assert.NoError(t, err)
	assert.Equal(t, PNG, f)
	f, err = ExtToFormat("jpg")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat(".vrm")
	assert.Error(t, err)
	assert.Equal(t, "TIFF", TIFF.String())
}

func TestSave(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)
	img.Set(1, 2, color.RGBA{255, 0, 0, 255})
	dir := t.TempDir()
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		fn := filepath.Join(dir, "frame"+ext)
		require.NoError(t, Save(img, fn))
		f, err := os.Open(fn)
		require.NoError(t, err)
		got, name, err := image.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, ext, "."+name)
		assert.Equal(t, img.Bounds(), got.Bounds())
		r, g, b, _ := got.At(1, 2).RGBA()
		assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	}
	assert.Error(t, Save(img, filepath.Join(dir, "frame.xyz")))
}
