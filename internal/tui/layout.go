package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Screen rows: title, pull header, list, then status and help/filter.
const (
	listTop    = 2
	footerRows = 2
)

func (m Model) listRows() int {
	return max(1, m.Height-listTop-footerRows)
}

// spread places left and right at the edges of width cells.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
