// Package render draws engine scenes on a terminal through tcell
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/viewport"
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	stylePaused     = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
)

// Terminal implements engine.Renderer on a tcell screen
// Render must be called from the scheduling goroutine
type Terminal struct {
	screen tcell.Screen
	cfg    config.Renderer

	width  int
	height int
	inited bool
	frames uint64
}

// NewTerminal wraps an uninitialized screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Screen returns the wrapped screen, for input polling
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// ViewSize returns the view size last passed by the runtime
func (t *Terminal) ViewSize() (int, int) { return t.width, t.height }

// Frames returns the number of rendered frames
func (t *Terminal) Frames() uint64 { return t.frames }

// Init initializes the screen; width and height are the initial view size in cells
func (t *Terminal) Init(width, height int, cfg config.Renderer) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.inited = true
	t.cfg = cfg
	t.width, t.height = width, height

	t.screen.SetStyle(styleBackground)
	t.screen.HideCursor()
	if cfg.Title != "" {
		t.screen.SetTitle(cfg.Title)
	}
	t.screen.Clear()
	return nil
}

// Resize records the new view size; the next Render redraws at that size
func (t *Terminal) Resize(width, height int) {
	t.width, t.height = width, height
	t.screen.Sync()
}

// Render draws one frame of s
func (t *Terminal) Render(s *engine.Scene) {
	t.screen.Clear()
	rt := s.Runtime()
	cols, rows := t.screen.Size()

	drawRows := rows
	if t.cfg.StatusLine && rows > 0 {
		drawRows--
	}

	if d, ok := s.Logic().(Drawer); ok {
		cfg := rt.Config()
		d.Draw(&Canvas{
			screen:  t.screen,
			fit:     rt.Viewport(),
			content: viewport.Size{W: cfg.Width, H: cfg.Height},
			cols:    cols,
			rows:    drawRows,
		})
	}

	if t.cfg.StatusLine && rows > 0 {
		t.drawStatus(rt, s, cols, rows-1)
	}

	t.screen.Show()
	t.frames++
}

// Fini restores the terminal
func (t *Terminal) Fini() {
	if t.inited {
		t.screen.Fini()
		t.inited = false
	}
}

// StatusText formats the status line for s
// A nil scene, before the first swap lands, shows "-" at the configured rate
func StatusText(rt *engine.Runtime, s *engine.Scene) string {
	name, fps := "-", rt.Config().DesiredFPS
	if s != nil {
		name, fps = s.Name(), s.DesiredFPS
	}
	var b strings.Builder
	fmt.Fprintf(&b, " %s | %dfps | x%.2f", name, fps, rt.Speed())
	if reasons := rt.PauseController().Reasons(); len(reasons) > 0 {
		fmt.Fprintf(&b, " | paused: %s", strings.Join(reasons, ","))
	}
	clock := rt.Scheduler().Clock()
	fmt.Fprintf(&b, " | updates %d", clock.FixedUpdates)
	if clock.SpiralRecoveries > 0 {
		fmt.Fprintf(&b, " | spirals %d", clock.SpiralRecoveries)
	}
	return b.String()
}

func (t *Terminal) drawStatus(rt *engine.Runtime, s *engine.Scene, cols, row int) {
	style := styleStatus
	if rt.Paused() {
		style = stylePaused
	}
	text := []rune(StatusText(rt, s))
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		t.screen.SetContent(x, row, r, nil, style)
	}
}
