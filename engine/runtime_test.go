package engine

import (
	"testing"

	"github.com/lixenwraith/stagecore/config"
)

func TestRuntimeKeepsPartialConfig(t *testing.T) {
	rig := NewTestRig(config.Config{SkipFrame: 1, Speed: 0.5, ResizeMode: "never"})
	rt := rig.Runtime
	cfg := rt.Config()

	if cfg.SkipFrame != 1 {
		t.Errorf("SkipFrame = %d, want 1", cfg.SkipFrame)
	}
	if rt.Speed() != 0.5 {
		t.Errorf("Speed() = %v, want 0.5", rt.Speed())
	}
	if cfg.ResizeMode != "never" {
		t.Errorf("ResizeMode = %q, want never", cfg.ResizeMode)
	}

	d := config.Default()
	if cfg.Width != d.Width || cfg.Height != d.Height || cfg.DesiredFPS != d.DesiredFPS {
		t.Errorf("size/fps = %dx%d@%d, want defaults %dx%d@%d",
			cfg.Width, cfg.Height, cfg.DesiredFPS, d.Width, d.Height, d.DesiredFPS)
	}
}

func TestRuntimeZeroConfigUsesDefaults(t *testing.T) {
	rig := NewTestRig(config.Config{})
	if got, want := rig.Runtime.Config(), config.Default(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
	if rig.Runtime.Speed() != 1 {
		t.Errorf("Speed() = %v, want 1", rig.Runtime.Speed())
	}
}
