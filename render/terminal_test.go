package render

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/host"
)

// markLogic draws a single marker and a label
type markLogic struct {
	x, y float64
}

func (m *markLogic) Draw(c *Canvas) {
	c.Set(m.x, m.y, '@', tcell.StyleDefault)
	c.Text(0, 0, "hi", tcell.StyleDefault)
	c.Set(-1, -1, 'X', tcell.StyleDefault)
}

func newTerminalRuntime(t *testing.T, cfg config.Config) (*engine.Runtime, *host.Manual, tcell.SimulationScreen, *Terminal) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminal(screen)
	h := host.NewManual()
	rt := engine.NewRuntime(engine.Options{
		Config:   cfg,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
		Host:     h,
		Renderer: term,
	})
	t.Cleanup(term.Fini)
	return rt, h, screen, term
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteRune(cellAt(screen, x, y))
	}
	return b.String()
}

func TestTerminalRendersDrawer(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 40, 10
	cfg.ResizeMode = "never"
	rt, h, screen, term := newTerminalRuntime(t, cfg)
	rt.AddScene("Main", func(*engine.Scene) engine.Logic { return &markLogic{x: 5, y: 3} })

	if err := rt.StartWithScene("Main"); err != nil {
		t.Fatalf("StartWithScene: %v", err)
	}
	screen.SetSize(40, 10)
	h.Fire(0)

	if got := cellAt(screen, 5, 3); got != '@' {
		t.Errorf("cell (5,3) = %q, want '@'", got)
	}
	if got := rowText(screen, 0, 2); got != "hi" {
		t.Errorf("row 0 = %q, want %q", got, "hi")
	}
	if term.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", term.Frames())
	}
	if w, hgt := term.ViewSize(); w != 40 || hgt != 10 {
		t.Errorf("ViewSize() = %dx%d, want 40x10", w, hgt)
	}
}

func TestTerminalLetterBoxOffset(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 20, 10
	rt, h, screen, _ := newTerminalRuntime(t, cfg)
	rt.AddScene("Main", func(*engine.Scene) engine.Logic { return &markLogic{x: 5, y: 5} })

	if err := rt.StartWithScene("Main"); err != nil {
		t.Fatalf("StartWithScene: %v", err)
	}
	screen.SetSize(40, 10)
	rt.Resize(40, 10)
	h.Fire(0)

	// 20x10 content in a 40x10 window is centered with a 10 cell margin
	if got := cellAt(screen, 15, 5); got != '@' {
		t.Errorf("cell (15,5) = %q, want '@'", got)
	}
	if got := rowText(screen, 0, 12); got != "          hi" {
		t.Errorf("row 0 = %q, want label at the margin", got)
	}
}

func TestStatusTextWithoutScene(t *testing.T) {
	cfg := config.Default()
	rt, _, _, _ := newTerminalRuntime(t, cfg)
	rt.Pause("user")

	got := StatusText(rt, rt.Scene())
	want := " - | 30fps | x1.00 | paused: user | updates 0"
	if got != want {
		t.Errorf("StatusText() = %q, want %q", got, want)
	}
}

func TestTerminalStatusLine(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 60, 10
	cfg.ResizeMode = "never"
	cfg.Renderer.StatusLine = true
	rt, h, screen, term := newTerminalRuntime(t, cfg)
	rt.AddScene("Space", func(*engine.Scene) engine.Logic { return &markLogic{x: 1, y: 9} })

	if err := rt.StartWithScene("Space"); err != nil {
		t.Fatalf("StartWithScene: %v", err)
	}
	screen.SetSize(60, 10)
	h.Fire(0)

	status := rowText(screen, 9, 60)
	if !strings.HasPrefix(status, " Space | 30fps | x1.00") {
		t.Errorf("status line = %q", status)
	}
	if got := cellAt(screen, 1, 9); got == '@' {
		t.Error("Expected the status line to cover the last content row")
	}

	// Render is suppressed while paused, an explicit render shows the reasons
	rt.Pause("user")
	term.Render(rt.Scene())
	status = rowText(screen, 9, 60)
	if !strings.Contains(status, "paused: user") {
		t.Errorf("paused status line = %q", status)
	}
}
