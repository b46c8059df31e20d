package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key closes help
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true

	case key.Matches(msg, Keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()

	case key.Matches(msg, Keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}

	case key.Matches(msg, Keys.Refresh):
		return m, m.startManualRefresh()

	case key.Matches(msg, Keys.ToggleEnabled):
		enabled := !m.Attacher.IsEnabled()
		if err := m.Attacher.SetEnabled(enabled); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		if enabled {
			return m, m.setStatus("pull to refresh enabled", false)
		}
		return m, m.setStatus("pull to refresh disabled", false)

	case key.Matches(msg, Keys.Up):
		m.list.MoveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.list.MoveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.list.Scroll(-max(1, m.list.rows))
	case key.Matches(msg, Keys.PageDown):
		m.list.Scroll(max(1, m.list.rows))
	case key.Matches(msg, Keys.Home):
		m.list.GoTop()
	case key.Matches(msg, Keys.End):
		m.list.GoBottom()
	}
	return m, nil
}
