package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/game"
)

// terminalKey maps a tcell key event to a game key
func terminalKey(ev *tcell.EventKey) game.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.KeyUp
	case tcell.KeyDown:
		return game.KeyDown
	case tcell.KeyLeft:
		return game.KeyLeft
	case tcell.KeyRight:
		return game.KeyRight
	case tcell.KeyEnter:
		return game.KeyConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.KeyQuit
	case tcell.KeyRune:
	default:
		return game.KeyNone
	}

	switch ev.Rune() {
	case ' ':
		return game.KeyFire
	case 'p':
		return game.KeyPause
	case 'f':
		return game.KeyFreeze
	case '+', '=':
		return game.KeyFaster
	case '-':
		return game.KeySlower
	case 'q':
		return game.KeyQuit
	case 'k', 'w':
		return game.KeyUp
	case 'j', 's':
		return game.KeyDown
	case 'h', 'a':
		return game.KeyLeft
	case 'l', 'd':
		return game.KeyRight
	}
	return game.KeyNone
}
