// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides functions for opening structs
// from YAML files.
package yamlx

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Open reads the given object from the given filename using YAML encoding.
// An empty document leaves v unchanged.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	err = yaml.NewDecoder(f).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
