package engine

import (
	"time"

	"github.com/lixenwraith/stagecore/config"
)

// FrameHost is the host frame-callback primitive
// RequestFrame schedules cb once with a timestamp measured from an arbitrary host origin
type FrameHost interface {
	RequestFrame(cb func(timestamp time.Duration)) uint64
	CancelFrame(id uint64)
}

// Renderer draws scenes; the core never renders itself
type Renderer interface {
	Init(width, height int, cfg config.Renderer) error
	Resize(width, height int)
	Render(s *Scene)
}

// Timer is advanced synchronously inside each fixed update
type Timer interface {
	Update(dt time.Duration)
	Now() time.Duration
}

// nopRenderer is used when the runtime is built without a renderer
type nopRenderer struct{}

func (nopRenderer) Init(int, int, config.Renderer) error { return nil }
func (nopRenderer) Resize(int, int)                      {}
func (nopRenderer) Render(*Scene)                        {}
