package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/feed"
)

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case key.Matches(msg, Keys.Accept):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter fills the list from the current query, falling back to the
// looser search when the title filter finds nothing.
func (m Model) applyFilter() {
	query := m.filter.Value()
	matches := m.Feed.Filter(query)
	if len(matches) == 0 && strings.TrimSpace(query) != "" {
		for _, it := range m.Feed.Search(query) {
			matches = append(matches, feed.Match{Item: it})
		}
	}
	m.list.SetMatches(matches)
}
