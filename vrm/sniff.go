// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"encoding/binary"

	"github.com/h2non/filetype"
)

// HeaderSize is the number of leading bytes needed to recognize a
// binary glTF file.
const HeaderSize = 12

// GLBType is the filetype registered for binary glTF, which is the
// container format of .vrm files.
var GLBType = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(GLBType, matchGLB)
}

// matchGLB matches the 12 byte binary glTF header: the magic "glTF"
// followed by a little-endian container version of 2.
func matchGLB(buf []byte) bool {
	return len(buf) >= HeaderSize &&
		buf[0] == 'g' && buf[1] == 'l' && buf[2] == 'T' && buf[3] == 'F' &&
		binary.LittleEndian.Uint32(buf[4:8]) == 2
}

// IsGLB returns true if the given header is that of a binary glTF file.
func IsGLB(head []byte) bool {
	return filetype.IsType(head, GLBType)
}

// Sniff returns a description of the file type of the given header,
// for error messages.
func Sniff(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "unknown"
	}
	return kind.MIME.Value
}
