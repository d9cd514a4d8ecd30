// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record, with
// the level colored according to the terminal capabilities of the writer.
// Time stamps are omitted, since messages are meant for the user.
type Handler struct {
	out    *termenv.Output
	mu     *sync.Mutex
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewHandler returns a new [Handler] writing to w,
// showing records at or above the given level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{out: termenv.NewOutput(w), mu: &sync.Mutex{}, level: level}
}

// SetDefaultLogger sets the default [slog] logger to a [Handler]
// on [os.Stderr] at the current [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// LevelColor returns the color used to display the given level.
func LevelColor(level slog.Level) termenv.Color {
	switch {
	case level >= slog.LevelError:
		return termenv.ANSIBrightRed
	case level >= slog.LevelWarn:
		return termenv.ANSIBrightYellow
	case level >= slog.LevelInfo:
		return termenv.ANSIBrightCyan
	default:
		return termenv.ANSIBrightBlack
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := &bytes.Buffer{}
	buf.WriteString(h.out.String(r.Level.String()).Foreground(LevelColor(r.Level)).String())
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(buf, a)
	}
	prefix := groupPrefix(h.groups)
	r.Attrs(func(a slog.Attr) bool {
		a.Key = prefix + a.Key
		writeAttr(buf, a)
		return true
	})
	buf.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	prefix := groupPrefix(h.groups)
	nh.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		a.Key = prefix + a.Key
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.groups = append(append([]string{}, h.groups...), name)
	return &nh
}

func groupPrefix(groups []string) string {
	prefix := ""
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

func writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			ga.Key = a.Key + "." + ga.Key
			writeAttr(buf, ga)
		}
		return
	}
	fmt.Fprintf(buf, " %s=%v", a.Key, a.Value.Any())
}
