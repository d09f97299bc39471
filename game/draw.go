package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/render"
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleText       = styleBackground.Foreground(tcell.ColorWhite)
	styleTitle      = styleBackground.Foreground(tcell.ColorYellow).Bold(true)
	styleShip       = styleBackground.Foreground(tcell.ColorAqua).Bold(true)
	styleBullet     = styleBackground.Foreground(tcell.ColorWhite)
	styleMeteor     = styleBackground.Foreground(tcell.ColorOrange)
	styleFrozen     = styleBackground.Foreground(tcell.ColorLightBlue)
	styleHealth     = styleBackground.Foreground(tcell.ColorRed)
)

// blinkPeriod toggles ship visibility while invincible
const blinkPeriod = 100 * time.Millisecond

// centered draws s horizontally centered at row y of the content area
func centered(c *render.Canvas, y float64, s string, style tcell.Style) {
	w, _ := c.Size()
	// Text advances one cell per rune, offset the start by half the rune count in content units
	cx0, _ := c.Cell(0, y)
	cx1, _ := c.Cell(float64(w), y)
	cells := cx1 - cx0
	if cells <= 0 {
		return
	}
	start := float64(w) / 2 * (1 - float64(len([]rune(s)))/float64(cells))
	c.Text(start, y, s, style)
}

func (l *loadingLogic) Draw(c *render.Canvas) {
	_, h := c.Size()
	c.Fill(' ', styleBackground)
	centered(c, float64(h)/2, "loading...", styleText)
}

func (m *menuLogic) Draw(c *render.Canvas) {
	_, h := c.Size()
	c.Fill(' ', styleBackground)
	centered(c, float64(h)/3, "S T A G E C O R E", styleTitle)
	centered(c, float64(h)/2, "press Enter to start", styleText)
	centered(c, float64(h)*2/3, "arrows move  space fires  f freezes meteors  p pauses  q quits", styleText)
}

func (g *gameOverLogic) Draw(c *render.Canvas) {
	_, h := c.Size()
	c.Fill(' ', styleBackground)
	centered(c, float64(h)/3, "GAME OVER", styleTitle)
	centered(c, float64(h)/2, fmt.Sprintf("score %d", g.game.lastScore), styleText)
	centered(c, float64(h)*2/3, "press Enter", styleText)
}

func (l *spaceLogic) Draw(c *render.Canvas) {
	w, _ := c.Size()
	c.Fill(' ', styleBackground)
	reg := l.scene.Actors()

	meteor := styleMeteor
	if l.frozen {
		meteor = styleFrozen
	}
	reg.Each(TagMeteors, func(a engine.Actor) {
		m := a.(*Meteor)
		c.Set(m.Pos.X, m.Pos.Y, meteorGlyph(m.Level), meteor)
	})
	reg.Each(TagBullets, func(a engine.Actor) {
		b := a.(*Bullet)
		c.Set(b.Pos.X, b.Pos.Y, '·', styleBullet)
	})
	if s := l.ship; s != nil && s.visible() {
		c.Set(s.Pos.X, s.Pos.Y, shipGlyph(s.Facing), styleShip)
	}

	c.Text(0, 0, strings.Repeat("♥", max(l.ship.Health, 0)), styleHealth)
	c.Text(float64(w)/2, 0, fmt.Sprintf("score %d", l.score), styleText)
}

func meteorGlyph(level int) rune {
	switch {
	case level >= 3:
		return '@'
	case level == 2:
		return 'O'
	default:
		return 'o'
	}
}

func shipGlyph(facing vec) rune {
	switch {
	case facing.X > 0:
		return '>'
	case facing.X < 0:
		return '<'
	case facing.Y > 0:
		return 'v'
	default:
		return '^'
	}
}

// visible is false on alternate blink periods while invincible
func (s *Ship) visible() bool {
	return !s.Invincible() || (s.invincible/blinkPeriod)%2 == 0
}
