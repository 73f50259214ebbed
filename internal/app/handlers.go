package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mpressed/internal/keymap"
)

// handleHelpKey handles keys while the help popup is open.
func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
	case "j", "down":
		m.helpView.ScrollDown()
	case "k", "up":
		m.helpView.ScrollUp()
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// handleKey dispatches a key through the focused pane's bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(m.focus.context(), msg.String())

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionFocusNext:
		m.focus = m.focus.next(1)
	case keymap.ActionFocusPrev:
		m.focus = m.focus.next(-1)
	case keymap.ActionHelp:
		m.showHelp = true
		m.helpView.Reset()
	case keymap.ActionRefresh:
		return m.handleRefresh()
	case keymap.ActionToggleWeighted:
		m.view.ToggleWeighted()
	case keymap.ActionMoveUp:
		m.handleMove(-1)
	case keymap.ActionMoveDown:
		m.handleMove(1)
	case keymap.ActionJumpStart:
		m.handleJump(false)
	case keymap.ActionJumpEnd:
		m.handleJump(true)
	case keymap.ActionPromoteSort:
		m.view.PromoteSort()
	case keymap.ActionReverseSort:
		m.view.ReverseSort()
	case keymap.ActionToggleArtist:
		m.view.ToggleArtist()
	case keymap.ActionIncludeAll:
		m.view.IncludeAllArtists()
	}
	return m, nil
}

// handleRefresh re-reads the store. A failed read stops the viewer; the
// error is kept for the caller to report.
func (m Model) handleRefresh() (tea.Model, tea.Cmd) {
	if err := m.load(); err != nil {
		m.logger.Error("refresh failed", "err", err)
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleMove(delta int) {
	switch m.focus {
	case PaneTable:
		m.view.MoveSelection(delta)
	case PaneSort:
		m.view.MoveSortCursor(delta)
	case PaneGroup:
		if delta < 0 {
			m.view.PrevGroup()
		} else {
			m.view.NextGroup()
		}
		m.relayout()
	case PaneFilter:
		m.view.MoveFilterCursor(delta, m.filterListHeight())
	}
}

func (m *Model) handleJump(end bool) {
	switch m.focus {
	case PaneTable:
		if end {
			m.view.SelectLast()
		} else {
			m.view.SelectFirst()
		}
	case PaneFilter:
		n := len(m.view.Filter().Artists())
		if end {
			m.view.MoveFilterCursor(n, m.filterListHeight())
		} else {
			m.view.MoveFilterCursor(-n, m.filterListHeight())
		}
	}
}
