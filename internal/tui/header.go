package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/mmcdole/pullfeed/internal/tui/styles"
)

// CompactLayout renders the header without labels.
const CompactLayout = "compact"

type headerPhase int

const (
	phaseIdle headerPhase = iota
	phasePulling
	phaseArmed
	phaseRefreshing
	phaseMinimized
)

// Header is the pull indicator row above the list. It implements
// pull.HeaderPresenter.
type Header struct {
	pull.BasePresenter

	feedName string
	compact  bool
	phase    headerPhase
	fraction float64
	width    int

	spinner  spinner.Model
	progress progress.Model
	ticking  bool // A spinner tick is in flight
	wantTick bool
}

var _ pull.HeaderPresenter = (*Header)(nil)

// NewHeader creates the header for feedName.
func NewHeader(feedName string) *Header {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = styles.AccentStyle
	return &Header{
		feedName: feedName,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (h *Header) OnCreated(_ pull.Host, header pull.Header) {
	if dh, ok := header.(*pull.DefaultHeader); ok {
		h.compact = dh.Layout == CompactLayout
	}
}

func (h *Header) OnReset() {
	h.phase = phaseIdle
	h.fraction = 0
}

func (h *Header) OnPulled(fraction float64) {
	h.phase = phasePulling
	h.fraction = fraction
}

func (h *Header) OnReleaseToRefresh() {
	h.phase = phaseArmed
	h.fraction = 1
}

func (h *Header) OnRefreshStarted() {
	h.phase = phaseRefreshing
	if !h.ticking {
		h.wantTick = true
	}
}

func (h *Header) OnRefreshMinimized() {
	h.phase = phaseMinimized
}

func (h *Header) OnEnvironmentChanged(_ pull.Host, cfg any) {
	if ws, ok := cfg.(tea.WindowSizeMsg); ok {
		h.SetWidth(ws.Width)
	}
}

// SetWidth sizes the progress bar for a terminal width.
func (h *Header) SetWidth(width int) {
	h.width = width
	h.progress.Width = max(10, width/3)
}

// Spinning reports whether the spinner is shown.
func (h *Header) Spinning() bool {
	return h.phase == phaseRefreshing || h.phase == phaseMinimized
}

// TakeTick returns the command that starts the spinner, once per refresh.
func (h *Header) TakeTick() tea.Cmd {
	if !h.wantTick {
		return nil
	}
	h.wantTick = false
	h.ticking = true
	return h.spinner.Tick
}

// UpdateSpinner advances the spinner. The tick loop ends once the refresh is over.
func (h *Header) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !h.Spinning() {
		h.ticking = false
		return nil
	}
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	return cmd
}

// View renders the header row.
func (h *Header) View() string {
	if !h.Visible() {
		if h.compact {
			return ""
		}
		return styles.DimStyle.Render("↓ pull to refresh")
	}

	switch h.phase {
	case phaseArmed:
		if h.compact {
			return styles.AccentStyle.Render("↑")
		}
		return styles.AccentStyle.Render("↑ release to refresh")
	case phaseRefreshing:
		if h.compact {
			return h.spinner.View()
		}
		return h.spinner.View() + " " + styles.SubtitleStyle.Render(fmt.Sprintf("refreshing %s…", h.feedName))
	case phaseMinimized:
		return h.spinner.View()
	default:
		bar := h.progress.ViewAs(h.fraction)
		if h.compact {
			return bar
		}
		return bar + " " + styles.DimStyle.Render("pull to refresh")
	}
}
