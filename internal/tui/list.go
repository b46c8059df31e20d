package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pullfeed/internal/feed"
	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/mmcdole/pullfeed/internal/tui/styles"
)

// feedList is the scrollable item list and the pull surface. Its height and
// scroll offset are measured in terminal rows.
type feedList struct {
	matches []feed.Match
	rows    int // Visible rows
	offset  int // Index of the first visible row
	cursor  int
	handler pull.TouchHandler
}

var (
	_ pull.Surface     = (*feedList)(nil)
	_ pull.Scroller    = (*feedList)(nil)
	_ pull.TouchSource = (*feedList)(nil)
)

func newFeedList() *feedList {
	return &feedList{}
}

func (l *feedList) Height() float64 { return float64(l.rows) }

func (l *feedList) ScrollOffset() float64 { return float64(l.offset) }

func (l *feedList) SetTouchHandler(h pull.TouchHandler) { l.handler = h }

// Touch forwards a pointer sample to the installed handler. It reports
// whether a pull owns the gesture.
func (l *feedList) Touch(ev pull.PointerEvent) (bool, error) {
	if l.handler == nil {
		return false, nil
	}
	return l.handler.OnTouch(l, ev)
}

// SetRows resizes the viewport.
func (l *feedList) SetRows(rows int) {
	l.rows = max(0, rows)
	l.clamp()
}

// SetMatches replaces the content, keeping the selected item when it survives.
func (l *feedList) SetMatches(matches []feed.Match) {
	selected := ""
	if m, ok := l.Selected(); ok {
		selected = m.Item.ID
	}
	l.matches = matches
	l.cursor = 0
	for i, m := range matches {
		if m.Item.ID == selected {
			l.cursor = i
			break
		}
	}
	l.clamp()
}

func (l *feedList) Len() int { return len(l.matches) }

// Selected returns the match under the cursor
func (l *feedList) Selected() (feed.Match, bool) {
	if l.cursor < 0 || l.cursor >= len(l.matches) {
		return feed.Match{}, false
	}
	return l.matches[l.cursor], true
}

// Scroll moves the viewport by delta rows without moving the cursor off screen.
func (l *feedList) Scroll(delta int) {
	l.offset += delta
	l.clampOffset()
	if l.cursor < l.offset {
		l.cursor = l.offset
	}
	if l.rows > 0 && l.cursor >= l.offset+l.rows {
		l.cursor = l.offset + l.rows - 1
	}
	l.clamp()
}

// MoveCursor moves the selection by delta and scrolls it into view.
func (l *feedList) MoveCursor(delta int) {
	l.cursor += delta
	l.clamp()
}

// SelectRow moves the cursor to a visible row, 0 being the top row.
func (l *feedList) SelectRow(row int) {
	if row < 0 || row >= l.rows {
		return
	}
	if idx := l.offset + row; idx < len(l.matches) {
		l.cursor = idx
	}
}

func (l *feedList) GoTop() {
	l.cursor = 0
	l.clamp()
}

func (l *feedList) GoBottom() {
	l.cursor = len(l.matches) - 1
	l.clamp()
}

func (l *feedList) clamp() {
	if l.cursor >= len(l.matches) {
		l.cursor = len(l.matches) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.rows > 0 && l.cursor >= l.offset+l.rows {
		l.offset = l.cursor - l.rows + 1
	}
	l.clampOffset()
}

func (l *feedList) clampOffset() {
	maxOffset := max(0, len(l.matches)-l.rows)
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders exactly rows lines of width cells.
func (l *feedList) View(width int, now time.Time) string {
	lines := make([]string, 0, l.rows)
	for row := 0; row < l.rows; row++ {
		idx := l.offset + row
		if idx >= len(l.matches) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, l.renderRow(l.matches[idx], idx == l.cursor, width, now))
	}
	return strings.Join(lines, "\n")
}

func (l *feedList) renderRow(m feed.Match, selected bool, width int, now time.Time) string {
	age := m.Item.Age(now)
	// Two cells of padding plus a space before the age column.
	titleWidth := max(1, width-len(age)-3)
	title := truncate(m.Item.Title, titleWidth)

	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}
	text := highlight(title, m.MatchedIndexes, base.GetForeground())
	gap := max(1, titleWidth-lipgloss.Width(title)+1)
	return base.Render(text + strings.Repeat(" ", gap) + styles.DimStyle.Render(age))
}

// highlight styles the title characters at the matched positions.
func highlight(title string, matched []int, fg lipgloss.TerminalColor) string {
	if len(matched) == 0 {
		return title
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	plain := lipgloss.NewStyle().Foreground(fg)
	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}
	return b.String()
}

// truncate shortens s to at most width cells, ending in an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
