package game

import (
	"github.com/lixenwraith/stagecore/engine"
)

// Key is a host-independent game command
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyConfirm
	KeyPause
	KeyFreeze
	KeyFaster
	KeySlower
	KeyQuit
)

// Pause reasons owned by the game
const (
	PauseUser       = "user"
	PauseVisibility = "visibility"
)

// speedStep is the change applied by KeyFaster and KeySlower
const speedStep = 0.25

// KeyHandler is implemented by scene logic that reacts to keys
type KeyHandler interface {
	HandleKey(k Key)
}

// HandleKey applies global keys and forwards the rest to the active scene
// Returns false when the game should exit
// Must run on the scheduling goroutine
func (g *Game) HandleKey(k Key) bool {
	rt := g.rt
	switch k {
	case KeyNone:
		return true
	case KeyQuit:
		return false
	case KeyPause:
		if rt.PauseController().IsPausedBy(PauseUser) {
			rt.Resume(PauseUser, false)
		} else {
			rt.Pause(PauseUser)
		}
		g.requestRedraw()
		return true
	case KeyFaster:
		rt.SetSpeed(rt.Speed() + speedStep)
		return true
	case KeySlower:
		rt.SetSpeed(rt.Speed() - speedStep)
		return true
	}

	// Scene keys are ignored while paused
	if rt.Paused() {
		return true
	}
	if s := rt.Scene(); s != nil {
		if h, ok := s.Logic().(KeyHandler); ok {
			h.HandleKey(k)
		}
	}
	return true
}

// Focus pauses the runtime while the host window or terminal is hidden, when configured
func (g *Game) Focus(focused bool) {
	if !g.rt.Config().PauseOnHide {
		return
	}
	if focused {
		g.rt.Resume(PauseVisibility, false)
	} else {
		g.rt.Pause(PauseVisibility)
	}
	g.requestRedraw()
}

// SetRedraw registers a function drawing one frame outside the scheduler, used while paused
func (g *Game) SetRedraw(fn func(*engine.Scene)) {
	g.redraw = fn
}

func (g *Game) requestRedraw() {
	if g.redraw == nil || !g.rt.Paused() {
		return
	}
	if s := g.rt.Scene(); s != nil {
		g.redraw(s)
	}
}
