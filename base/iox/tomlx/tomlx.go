// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for opening structs
// from TOML files.
package tomlx

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Open reads the given object from the given filename using TOML encoding.
// Fields not present in the file keep their current values.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewDecoder(f).Decode(v)
}
