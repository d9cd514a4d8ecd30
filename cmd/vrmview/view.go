// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cogentcore.org/vrmview/avatar"
	"cogentcore.org/vrmview/base/errors"
	"cogentcore.org/vrmview/base/fsx"
	"cogentcore.org/vrmview/base/iox/imagex"
	"cogentcore.org/vrmview/raster"
	"cogentcore.org/vrmview/vrm"
)

type viewFlags struct {
	out    string
	frames int
	watch  bool
	orbit  float32
}

func newViewCmd(rf *rootFlags) *cobra.Command {
	vf := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view <avatar.vrm>",
		Short: "Render an avatar framed on its head to an image file",
		Long: `Render an avatar framed on its head to an image file.

The avatar is loaded into a viewer, the render loop runs for the given
number of frames, and the last frame is saved. With --watch, the avatar
is reloaded and the image saved again every time the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := avatar.OpenConfig(rf.config)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg, args[0], vf)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&vf.out, "out", "o", "frame.png", "output image file (.png, .jpg, .bmp or .tif)")
	fs.IntVarP(&vf.frames, "frames", "n", 1, "number of frames to render before saving")
	fs.BoolVarP(&vf.watch, "watch", "w", false, "reload and save again when the avatar file changes")
	fs.Float32Var(&vf.orbit, "orbit", 0, "degrees to orbit around the head before rendering")
	return cmd
}

func runView(ctx context.Context, cfg *avatar.Config, path string, vf *viewFlags) error {
	if vf.frames < 1 {
		vf.frames = 1
	}
	if _, err := imagex.ExtToFormat(filepath.Ext(vf.out)); err != nil {
		return err
	}
	cv := raster.NewCanvas(cfg.CanvasSize(), cfg.PixelRatio)
	v := avatar.NewViewer(cfg)
	if err := v.InitializeScene(cv); err != nil {
		return err
	}
	defer v.Teardown()

	render := func(ctx context.Context) error {
		asset, err := vrm.OpenAsset(path)
		if err != nil {
			return err
		}
		if err := v.LoadAvatar(ctx, asset); err != nil {
			return err
		}
		if vf.orbit != 0 {
			v.Orbit(vf.orbit, 0)
		}
		if err := waitFrames(ctx, cv, vf.frames); err != nil {
			return err
		}
		if err := imagex.Save(cv.Frame(), vf.out); err != nil {
			return err
		}
		slog.Info("saved frame", "file", vf.out, "triangles", v.Stats().Triangles)
		return nil
	}
	if err := render(ctx); err != nil || !vf.watch {
		return err
	}

	slog.Info("watching for changes", "file", path)
	g, gctx := errgroup.WithContext(ctx)
	reload := make(chan struct{}, 1)
	g.Go(func() error {
		return fsx.WatchFile(gctx, path, 0, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-reload:
				// a bad save is reported, and the previous avatar stays
				if err := render(gctx); err != nil && !errors.Is(err, context.Canceled) {
					errors.Log(fmt.Errorf("reload %s: %w", path, err))
				}
			}
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// waitFrames waits until n more frames have been presented to the canvas.
func waitFrames(ctx context.Context, cv *raster.Canvas, n int) error {
	want := cv.Version() + n
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	for cv.Version() < want {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
	if cv.Frame() == nil {
		return fmt.Errorf("no frame rendered")
	}
	return nil
}
