package render

import "github.com/gdamore/tcell/v2"

// Action is a host command decoded from a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionTogglePlay
	ActionReset
	ActionQuit
	ActionToggleGraph
	ActionToggleSound
)

func (a Action) String() string {
	switch a {
	case ActionTogglePlay:
		return "toggle_play"
	case ActionReset:
		return "reset"
	case ActionQuit:
		return "quit"
	case ActionToggleGraph:
		return "toggle_graph"
	case ActionToggleSound:
		return "toggle_sound"
	}
	return "none"
}

// KeyAction maps a key event to an action
func KeyAction(ev *tcell.EventKey) Action {
	return keyAction(ev.Key(), ev.Rune())
}

func keyAction(key tcell.Key, ch rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ch {
	case ' ':
		return ActionTogglePlay
	case 'r', 'R':
		return ActionReset
	case 'q', 'Q':
		return ActionQuit
	case 'g', 'G':
		return ActionToggleGraph
	case 'm', 'M':
		return ActionToggleSound
	}
	return ActionNone
}
