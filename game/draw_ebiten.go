//go:build !tinygo

package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/stagecore/engine"
	"github.com/lixenwraith/stagecore/viewport"
)

var (
	colorShip   = color.RGBA{0x40, 0xe0, 0xff, 0xff}
	colorBullet = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorMeteor = color.RGBA{0xff, 0x90, 0x30, 0xff}
	colorFrozen = color.RGBA{0x90, 0xc0, 0xff, 0xff}
)

// ebitenFit maps content coordinates onto the logical ebiten screen
// Letter-boxed and unscaled views are laid out at content size and scaled by ebiten itself
type ebitenFit viewport.Result

func (f ebitenFit) point(p vec) (float32, float32) {
	r := viewport.Result(f)
	if r.Mode == viewport.LetterBox || r.Mode == viewport.Never {
		return float32(p.X), float32(p.Y)
	}
	x, y := r.ToView(p.X, p.Y)
	return float32(x), float32(y)
}

func (f ebitenFit) length(v float64) float32 {
	r := viewport.Result(f)
	if r.Mode == viewport.LetterBox || r.Mode == viewport.Never {
		return float32(v)
	}
	return float32(v * r.Scale)
}

func (f ebitenFit) textAt(screen *ebiten.Image, s string, p vec) {
	x, y := f.point(p)
	ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
}

func (g *Game) fit() ebitenFit { return ebitenFit(g.rt.Viewport()) }

func (g *Game) area() vec {
	cfg := g.rt.Config()
	return vec{float64(cfg.Width), float64(cfg.Height)}
}

func (l *loadingLogic) DrawEbiten(screen *ebiten.Image) {
	a := l.game.area()
	l.game.fit().textAt(screen, "loading...", vec{a.X/2 - 30, a.Y / 2})
}

func (m *menuLogic) DrawEbiten(screen *ebiten.Image) {
	a, f := m.game.area(), m.game.fit()
	f.textAt(screen, "S T A G E C O R E", vec{a.X/2 - 50, a.Y / 3})
	f.textAt(screen, "press Enter to start", vec{a.X/2 - 60, a.Y / 2})
	f.textAt(screen, "arrows move  space fires  f freezes  p pauses  q quits", vec{a.X/2 - 165, a.Y * 2 / 3})
}

func (g *gameOverLogic) DrawEbiten(screen *ebiten.Image) {
	a, f := g.game.area(), g.game.fit()
	f.textAt(screen, "GAME OVER", vec{a.X/2 - 27, a.Y / 3})
	f.textAt(screen, fmt.Sprintf("score %d", g.game.lastScore), vec{a.X/2 - 27, a.Y / 2})
	f.textAt(screen, "press Enter", vec{a.X/2 - 33, a.Y * 2 / 3})
}

func (l *spaceLogic) DrawEbiten(screen *ebiten.Image) {
	f := l.game.fit()
	reg := l.scene.Actors()

	meteor := colorMeteor
	if l.frozen {
		meteor = colorFrozen
	}
	reg.Each(TagMeteors, func(a engine.Actor) {
		m := a.(*Meteor)
		x, y := f.point(m.Pos)
		vector.DrawFilledCircle(screen, x, y, f.length(m.Radius()), meteor, true)
	})
	reg.Each(TagBullets, func(a engine.Actor) {
		b := a.(*Bullet)
		x, y := f.point(b.Pos)
		vector.DrawFilledRect(screen, x-1, y-1, 2, 2, colorBullet, false)
	})
	if s := l.ship; s != nil && s.visible() {
		x, y := f.point(s.Pos)
		tip := s.Pos.add(s.Facing.scale(shipRadius))
		tx, ty := f.point(tip)
		vector.DrawFilledCircle(screen, x, y, f.length(shipRadius/2), colorShip, true)
		vector.StrokeLine(screen, x, y, tx, ty, 2, colorShip, true)
	}

	f.textAt(screen, fmt.Sprintf("%s  score %d", strings.Repeat("*", max(l.ship.Health, 0)), l.score), vec{4, 4})
}
