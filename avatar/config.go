// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"cogentcore.org/vrmview/base/iox/tomlx"
	"cogentcore.org/vrmview/base/iox/yamlx"
	"cogentcore.org/vrmview/math32"
)

// Config holds the viewer settings. Scalar settings can be overridden
// with VRMVIEW_ environment variables.
type Config struct {

	// FOV is the vertical field of view of the camera in degrees.
	FOV float32 `toml:"fov" yaml:"fov" env:"VRMVIEW_FOV"`

	// Near is the near clipping plane distance.
	Near float32 `toml:"near" yaml:"near" env:"VRMVIEW_NEAR"`

	// Far is the far clipping plane distance.
	Far float32 `toml:"far" yaml:"far" env:"VRMVIEW_FAR"`

	// CameraPos is the starting camera position, looking at the origin.
	CameraPos math32.Vector3 `toml:"camera_pos" yaml:"camera_pos"`

	// Joint is the humanoid joint the camera is framed on after a load.
	Joint string `toml:"joint" yaml:"joint" env:"VRMVIEW_JOINT"`

	// HeadOffset is added to the joint position to get the camera
	// position when framing.
	HeadOffset math32.Vector3 `toml:"head_offset" yaml:"head_offset"`

	// FPS is the render loop frame rate.
	FPS int `toml:"fps" yaml:"fps" env:"VRMVIEW_FPS"`

	// DampingFrequency is the angular frequency of the view control
	// damping spring. Higher values settle faster; 0 disables damping.
	DampingFrequency float64 `toml:"damping_frequency" yaml:"damping_frequency" env:"VRMVIEW_DAMPING_FREQUENCY"`

	// ScreenSpacePanning pans in the plane of the view instead of
	// along the world axes.
	ScreenSpacePanning bool `toml:"screen_space_panning" yaml:"screen_space_panning" env:"VRMVIEW_SCREEN_SPACE_PANNING"`

	// Background is the clear color of each frame.
	Background color.RGBA `toml:"background" yaml:"background"`

	// LightDir is the direction toward the directional light.
	LightDir math32.Vector3 `toml:"light_dir" yaml:"light_dir"`

	// LightLumens is the brightness of the directional light (0-1).
	LightLumens float32 `toml:"light_lumens" yaml:"light_lumens" env:"VRMVIEW_LIGHT_LUMENS"`

	// AmbientLumens is the brightness of the ambient light (0-1).
	AmbientLumens float32 `toml:"ambient_lumens" yaml:"ambient_lumens" env:"VRMVIEW_AMBIENT_LUMENS"`

	// Width is the logical width of the canvas used by command line tools.
	Width int `toml:"width" yaml:"width" env:"VRMVIEW_WIDTH"`

	// Height is the logical height of the canvas used by command line tools.
	Height int `toml:"height" yaml:"height" env:"VRMVIEW_HEIGHT"`

	// PixelRatio is the number of device pixels per logical pixel
	// of the canvas used by command line tools.
	PixelRatio float32 `toml:"pixel_ratio" yaml:"pixel_ratio" env:"VRMVIEW_PIXEL_RATIO"`
}

// Defaults sets the default values.
func (cfg *Config) Defaults() {
	cfg.FOV = 30
	cfg.Near = .1
	cfg.Far = 20
	cfg.CameraPos = math32.Vec3(0, 1, 5)
	cfg.Joint = "head"
	cfg.HeadOffset = DefaultOffset
	cfg.FPS = 60
	cfg.DampingFrequency = 6
	cfg.ScreenSpacePanning = true
	cfg.Background = color.RGBA{32, 32, 40, 255}
	cfg.LightDir = math32.Vec3(1, 1, 1)
	cfg.LightLumens = 1
	cfg.AmbientLumens = .3
	cfg.Width = 300
	cfg.Height = 300
	cfg.PixelRatio = 1
}

// NewConfig returns a new config with default values.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

// CanvasSize returns the logical canvas size.
func (cfg *Config) CanvasSize() image.Point {
	return image.Pt(cfg.Width, cfg.Height)
}

// Validate returns an error if any setting is out of range.
func (cfg *Config) Validate() error {
	switch {
	case cfg.FOV <= 0 || cfg.FOV >= 180:
		return fmt.Errorf("avatar: fov %g out of range (0, 180)", cfg.FOV)
	case cfg.Near <= 0 || cfg.Far <= cfg.Near:
		return fmt.Errorf("avatar: invalid clip planes near %g far %g", cfg.Near, cfg.Far)
	case cfg.FPS <= 0:
		return fmt.Errorf("avatar: fps must be positive, got %d", cfg.FPS)
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("avatar: invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}

// OpenConfig returns the config with defaults applied, then the given
// TOML or YAML file (chosen by extension; skipped if filename is empty),
// then environment variable overrides.
func OpenConfig(filename string) (*Config, error) {
	cfg := NewConfig()
	if filename != "" {
		var err error
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".toml":
			err = tomlx.Open(cfg, filename)
		case ".yaml", ".yml":
			err = yamlx.Open(cfg, filename)
		default:
			err = fmt.Errorf("avatar: unsupported config file type %q", filename)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("avatar: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
