// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error functions that are helpful
// for dealing with errors in the context of a long-running viewer,
// where most errors are logged and the viewer keeps going.
// It re-exports the standard library errors functions for convenience.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "?"
	if fn != nil {
		name = filepath.Base(fn.Name())
	}
	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, name)
}

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
