package list

import tea "github.com/charmbracelet/bubbletea/v2"

// UpdateMsg carries the items of a new window. It is sent whenever the
// window changes, including while the list is still stabilizing.
type UpdateMsg[T any] struct {
	ListID int64
	Items  []T
}

// WindowStartMsg is sent when the start of a settled window moved.
type WindowStartMsg struct {
	ListID int64
	ChangeEvent
}

// WindowEndMsg is sent when the end of a settled window moved.
type WindowEndMsg struct {
	ListID int64
	ChangeEvent
}

// ChangeMsg is sent once for every settled pass that changed the window.
type ChangeMsg struct {
	ListID int64
	ChangeEvent
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// notify diffs the new window against the previous one and returns the
// notifications for it. The previous window is updated afterwards.
func (l *List[T]) notify(start, end int) []tea.Cmd {
	ev := ChangeEvent{Start: start, End: end}
	cmds := []tea.Cmd{
		emit(UpdateMsg[T]{ListID: l.id, Items: l.viewportItems}),
	}
	if !l.stabilizing {
		if !l.hasPrevious || start != l.previousStart {
			cmds = append(cmds, emit(WindowStartMsg{ListID: l.id, ChangeEvent: ev}))
		}
		if !l.hasPrevious || end != l.previousEnd {
			cmds = append(cmds, emit(WindowEndMsg{ListID: l.id, ChangeEvent: ev}))
		}
	}
	l.previousStart, l.previousEnd = start, end
	l.hasPrevious = true
	if !l.stabilizing {
		cmds = append(cmds, emit(ChangeMsg{ListID: l.id, ChangeEvent: ev}))
	}
	return cmds
}
