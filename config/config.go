// Package config loads runtime configuration from defaults, an optional YAML file and STAGECORE_ environment variables
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/stagecore/viewport"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "STAGECORE_"

// Config is consumed at the runtime boundary
type Config struct {
	// Width and Height are the content size in renderer units
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`

	// DesiredFPS is the default fixed update rate for new scenes
	DesiredFPS int `yaml:"desired_fps" env:"DESIRED_FPS"`
	// SkipFrame renders one of every SkipFrame+1 ticks
	SkipFrame int `yaml:"skip_frame" env:"SKIP_FRAME"`
	// Speed is the initial global time multiplier in [0,1]
	Speed float64 `yaml:"speed" env:"SPEED"`

	ResizeMode  string `yaml:"resize_mode" env:"RESIZE_MODE"`
	PauseOnHide bool   `yaml:"pause_on_hide" env:"PAUSE_ON_HIDE"`
	Debug       bool   `yaml:"debug" env:"DEBUG"`

	Renderer  Renderer  `yaml:"renderer" envPrefix:"RENDERER_"`
	Audio     Audio     `yaml:"audio" envPrefix:"AUDIO_"`
	Telemetry Telemetry `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// Renderer is passed to the renderer on initialization
type Renderer struct {
	Title      string  `yaml:"title" env:"TITLE"`
	StatusLine bool    `yaml:"status_line" env:"STATUS_LINE"`
	Resolution float64 `yaml:"resolution" env:"RESOLUTION"`
}

// Audio configures the beep output bus
type Audio struct {
	Enabled    bool `yaml:"enabled" env:"ENABLED"`
	SampleRate int  `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// Telemetry configures opt-in OTLP tracing
type Telemetry struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
	Service  string `yaml:"service" env:"SERVICE"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Width:      640,
		Height:     400,
		DesiredFPS: 30,
		SkipFrame:  0,
		Speed:      1,
		ResizeMode: string(viewport.LetterBox),
		Renderer: Renderer{
			Title:      "stagecore",
			Resolution: 1,
		},
		Audio: Audio{
			Enabled:    true,
			SampleRate: 48000,
		},
		Telemetry: Telemetry{
			Service: "stagecore",
		},
	}
}

// WithDefaults fills zero geometry, rate, mode and title fields from Default
// A fully zero Config becomes Default; otherwise set fields, Speed included, are kept
func (c Config) WithDefaults() Config {
	d := Default()
	if c == (Config{}) {
		return d
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.DesiredFPS <= 0 {
		c.DesiredFPS = d.DesiredFPS
	}
	if c.ResizeMode == "" {
		c.ResizeMode = d.ResizeMode
	}
	if c.Renderer.Title == "" {
		c.Renderer.Title = d.Renderer.Title
	}
	if c.Renderer.Resolution <= 0 {
		c.Renderer.Resolution = d.Renderer.Resolution
	}
	return c
}

// Load builds a Config from defaults, the YAML file at path (skipped when empty) and the environment
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("content size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.DesiredFPS <= 0 {
		errs = append(errs, fmt.Errorf("desired_fps must be positive, got %d", c.DesiredFPS))
	}
	if c.SkipFrame < 0 {
		errs = append(errs, fmt.Errorf("skip_frame must not be negative, got %d", c.SkipFrame))
	}
	if c.Speed < 0 || c.Speed > 1 {
		errs = append(errs, fmt.Errorf("speed must be within [0,1], got %v", c.Speed))
	}
	if _, err := viewport.ParseMode(c.ResizeMode); err != nil {
		errs = append(errs, err)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("telemetry enabled without endpoint"))
	}
	return errors.Join(errs...)
}

// Mode returns the parsed resize mode, LetterBox when invalid
func (c Config) Mode() viewport.Mode {
	m, err := viewport.ParseMode(c.ResizeMode)
	if err != nil {
		return viewport.LetterBox
	}
	return m
}
