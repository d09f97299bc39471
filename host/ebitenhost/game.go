//go:build !tinygo

// Package ebitenhost runs the engine inside an ebiten window
// The ebiten game loop is both the frame host and the renderer
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/host"
	"github.com/lixenwraith/stagecore/render"
)

// Drawer is implemented by scene logic that draws directly on the window
type Drawer interface {
	DrawEbiten(screen *ebiten.Image)
}

// ErrQuit ends Run without reporting a failure
var ErrQuit = errors.New("ebitenhost: quit")

var clearColor = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

// Game adapts the runtime to ebiten.Game
// Update fires pending frame callbacks with the time since the first update;
// Draw shows the scene last handed to Render
type Game struct {
	frames host.Queue
	start  time.Time

	scene  *engine.Scene
	width  int
	height int
	scale  int
	title  string

	window   [2]int
	onResize func(width, height int)
	onInput  func() error
	quit     bool
}

// New creates a window host; scale multiplies the view size for the initial window
func New(scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	return &Game{scale: scale}
}

// OnResize registers the window size callback, normally Runtime.Resize
func (g *Game) OnResize(fn func(width, height int)) { g.onResize = fn }

// OnInput registers a per-update input poll, returning ErrQuit stops the loop
func (g *Game) OnInput(fn func() error) { g.onInput = fn }

// Quit ends the game loop after the current update
func (g *Game) Quit() { g.quit = true }

// ===== engine.FrameHost =====

// RequestFrame schedules cb for the next ebiten update
func (g *Game) RequestFrame(cb func(time.Duration)) uint64 { return g.frames.Request(cb) }

// CancelFrame drops a scheduled callback
func (g *Game) CancelFrame(id uint64) { g.frames.Cancel(id) }

// ===== engine.Renderer =====

// Init sets the window title and size from the view size
func (g *Game) Init(width, height int, cfg config.Renderer) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid view size %dx%d", width, height)
	}
	g.width, g.height = width, height
	g.title = cfg.Title
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(width*g.scale, height*g.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Resize changes the logical screen size returned by Layout
func (g *Game) Resize(width, height int) {
	g.width, g.height = width, height
}

// Render records the scene to show on the next Draw
func (g *Game) Render(s *engine.Scene) {
	g.scene = s
}

// ===== ebiten.Game =====

// Update polls input and drives the engine frame chain
func (g *Game) Update() error {
	if g.start.IsZero() {
		g.start = time.Now()
	}
	if g.onInput != nil {
		if err := g.onInput(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	if g.quit {
		return ebiten.Termination
	}

	ts := time.Since(g.start)
	for _, cb := range g.frames.Take() {
		cb(ts)
	}
	return nil
}

// Draw renders the last scene
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	if g.scene == nil {
		return
	}
	if d, ok := g.scene.Logic().(Drawer); ok {
		d.DrawEbiten(screen)
		return
	}
	ebitenutil.DebugPrint(screen, render.StatusText(g.scene.Runtime(), g.scene))
}

// Layout reports window size changes and keeps the logical size at the view size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.window != [2]int{outsideWidth, outsideHeight} {
		g.window = [2]int{outsideWidth, outsideHeight}
		if g.onResize != nil {
			g.onResize(outsideWidth/g.scale, outsideHeight/g.scale)
		}
	}
	return max(g.width, 1), max(g.height, 1)
}

// Run blocks in the ebiten loop until the window closes or Quit is called
func (g *Game) Run() error {
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
