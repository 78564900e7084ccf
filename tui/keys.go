package tui

import (
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/gdamore/tcell/v2"
)

// action is what a key press asks the player loop to do.
type action uint8

const (
	actionNone action = iota
	actionCommand
	actionQuit
)

var keyCommands = map[tcell.Key]game.Command{
	tcell.KeyLeft:  game.CmdRotateLeft,
	tcell.KeyRight: game.CmdRotateRight,
	tcell.KeyUp:    game.CmdForward,
	tcell.KeyDown:  game.CmdBackward,
}

var runeCommands = map[rune]game.Command{
	' ': game.CmdToggleView,
	'a': game.CmdRotateLeft,
	'd': game.CmdRotateRight,
	'w': game.CmdForward,
	's': game.CmdBackward,
}

// translate maps a key event to a session command.
func translate(ev *tcell.EventKey) (action, game.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, ""
	case tcell.KeyRune:
		r := ev.Rune()
		if r == 'q' || r == 'Q' {
			return actionQuit, ""
		}
		if cmd, ok := runeCommands[r]; ok {
			return actionCommand, cmd
		}
		return actionNone, ""
	}

	if cmd, ok := keyCommands[ev.Key()]; ok {
		return actionCommand, cmd
	}
	return actionNone, ""
}
