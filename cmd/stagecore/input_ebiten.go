//go:build !tinygo

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/stagecore/game"
	"github.com/lixenwraith/stagecore/host/ebitenhost"
)

// Held keys repeat every update, edge keys fire once per press
var (
	ebitenHeld = map[ebiten.Key]game.Key{
		ebiten.KeyArrowUp:    game.KeyUp,
		ebiten.KeyArrowDown:  game.KeyDown,
		ebiten.KeyArrowLeft:  game.KeyLeft,
		ebiten.KeyArrowRight: game.KeyRight,
		ebiten.KeySpace:      game.KeyFire,
	}
	ebitenPressed = map[ebiten.Key]game.Key{
		ebiten.KeyEnter:  game.KeyConfirm,
		ebiten.KeyP:      game.KeyPause,
		ebiten.KeyF:      game.KeyFreeze,
		ebiten.KeyEqual:  game.KeyFaster,
		ebiten.KeyMinus:  game.KeySlower,
		ebiten.KeyQ:      game.KeyQuit,
		ebiten.KeyEscape: game.KeyQuit,
	}
)

// ebitenInput returns the per-update poll for the window host
func ebitenInput(g *game.Game) func() error {
	focused := true
	return func() error {
		if f := ebiten.IsFocused(); f != focused {
			focused = f
			g.Focus(f)
		}
		for k, gk := range ebitenPressed {
			if inpututil.IsKeyJustPressed(k) && !g.HandleKey(gk) {
				return ebitenhost.ErrQuit
			}
		}
		for k, gk := range ebitenHeld {
			if ebiten.IsKeyPressed(k) {
				g.HandleKey(gk)
			}
		}
		return nil
	}
}
