package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/pull"
)

// pointerEvent maps a mouse message to a pull sample relative to the list
// whose first row is originY. List rows are numbered from 1 so that a press
// on the first row can start a pull.
func pointerEvent(msg tea.MouseMsg, originY int) (pull.PointerEvent, bool) {
	ev := pull.PointerEvent{
		X: float64(msg.X),
		Y: float64(msg.Y - originY + 1),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return pull.PointerEvent{}, false
		}
		ev.Action = pull.ActionDown
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return pull.PointerEvent{}, false
		}
		ev.Action = pull.ActionMove
	case tea.MouseActionRelease:
		// X10 reporting does not say which button was released.
		ev.Action = pull.ActionUp
	default:
		return pull.PointerEvent{}, false
	}
	return ev, true
}

// wheelDelta returns the scroll rows for a wheel message.
func wheelDelta(msg tea.MouseMsg) (int, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -3, true
	case tea.MouseButtonWheelDown:
		return 3, true
	}
	return 0, false
}
