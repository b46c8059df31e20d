package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pullfeed/internal/tui/styles"
)

// View renders the screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		styles.HeaderStyle.Render(m.header.View()),
		m.list.View(m.Width, m.clock.Now()),
		m.renderStatus(),
		m.renderFooter(),
	)
}

func (m Model) renderTitle() string {
	left := styles.TitleStyle.Render("pullfeed") +
		styles.DimStyle.Render(fmt.Sprintf(" · %s · %d items", m.Feed.Name(), m.list.Len()))
	var right string
	if !m.Attacher.IsEnabled() {
		right = styles.ErrorStyle.Render("pull off")
	}
	return spread(left, right, m.Width)
}

// renderStatus shows the status message or the last refresh, and the
// attacher state.
func (m Model) renderStatus() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case len(m.history) > 0:
		last := m.history[0]
		text := fmt.Sprintf("last refresh %s · %s", last.CompletedAt.Local().Format("15:04:05"), last.Trigger)
		if last.Error != "" {
			left = styles.ErrorStyle.Render(text + " · failed")
		} else {
			left = styles.DimStyle.Render(fmt.Sprintf("%s · +%d in %s", text, last.Added, last.Duration().Round(10*time.Millisecond)))
		}
	default:
		left = styles.DimStyle.Render("never refreshed")
	}

	right := styles.DimStyle.Render(fmt.Sprintf("%s · header %s", m.Attacher.Status(), m.session.headerState))
	return styles.FooterStyle.Render(spread(left, right, m.Width-2))
}

func (m Model) renderFooter() string {
	if m.filtering || m.filter.Value() != "" {
		return styles.FilterStyle.Render(m.filter.View())
	}

	hints := make([]string, 0, len(Keys.ShortHelp()))
	for _, b := range Keys.ShortHelp() {
		hints = append(hints, renderBinding(b))
	}
	return styles.FooterStyle.Render(strings.Join(hints, styles.DimStyle.Render(" · ")))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	for i, group := range Keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n  Drag the list down with the mouse to refresh.\n\nPress any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.AccentStyle.Render(h.Key) + styles.DimStyle.Render(" "+h.Desc)
}
