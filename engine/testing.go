package engine

import (
	"bytes"
	"log"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/host"
	"github.com/lixenwraith/stagecore/timer"
)

// RecordingRenderer records every call for assertions in tests
type RecordingRenderer struct {
	InitCalls  int
	InitWidth  int
	InitHeight int
	Resizes    [][2]int
	Rendered   []string // scene names in render order
	InitErr    error
	Last       *Scene
}

// Init records the initial size
func (r *RecordingRenderer) Init(width, height int, _ config.Renderer) error {
	r.InitCalls++
	r.InitWidth, r.InitHeight = width, height
	return r.InitErr
}

// Resize records the new size
func (r *RecordingRenderer) Resize(width, height int) {
	r.Resizes = append(r.Resizes, [2]int{width, height})
}

// Render records the scene name
func (r *RecordingRenderer) Render(s *Scene) {
	r.Rendered = append(r.Rendered, s.Name())
	r.Last = s
}

// TestRig bundles a runtime with controllable collaborators
type TestRig struct {
	Runtime  *Runtime
	Host     *host.Manual
	Renderer *RecordingRenderer
	Timer    *timer.Facility
	Log      *bytes.Buffer
}

// NewTestRig creates a runtime on a manual host, zero fields of cfg take their defaults
func NewTestRig(cfg config.Config) *TestRig {
	buf := &bytes.Buffer{}
	rig := &TestRig{
		Host:     host.NewManual(),
		Renderer: &RecordingRenderer{},
		Timer:    timer.New(),
		Log:      buf,
	}
	rig.Runtime = NewRuntime(Options{
		Config:   cfg,
		Logger:   log.New(buf, "", 0),
		Host:     rig.Host,
		Renderer: rig.Renderer,
		Timer:    rig.Timer,
	})
	return rig
}
