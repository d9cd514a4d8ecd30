// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex saves rendered frames in the common image formats.
package imagex

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats are the supported image encoding / decoding formats
type Formats int32

// The supported image encoding formats
const (
	None Formats = iota
	PNG
	JPEG
	TIFF
	BMP
)

var formatNames = [...]string{"None", "PNG", "JPEG", "TIFF", "BMP"}

// String returns the name of the format.
func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, errors.New("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	ext = strings.ToLower(ext)
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// Save saves the image to the given filename,
// with the format inferred from the filename.
func Save(im image.Image, filename string) error {
	ext := filepath.Ext(filename)
	f, err := ExtToFormat(ext)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the image to the given writer using the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("iox/imagex.Write: format %q not valid", f)
	}
}
