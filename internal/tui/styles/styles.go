package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
	MatchStyle        lipgloss.Style
)

// Header and footer styles
var (
	HeaderStyle lipgloss.Style
	FooterStyle lipgloss.Style
	FilterStyle lipgloss.Style
	ModalStyle  lipgloss.Style
)

func init() {
	UseTheme("default")
}

// UseTheme rebuilds the styles for the named theme ("default" or "mono").
func UseTheme(name string) {
	accent, selected, ok, bad := lipgloss.TerminalColor(Accent), lipgloss.TerminalColor(SlateLight), lipgloss.TerminalColor(Green), lipgloss.TerminalColor(Red)
	if name == "mono" {
		accent, selected, ok, bad = White, DimGray, White, White
	}

	TitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
		Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
		Foreground(accent)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(bad)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ok)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(accent).
		Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(selected).
		Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Padding(0, 1)

	MatchStyle = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(accent).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(DimGray).
		Padding(0, 1)

	FilterStyle = lipgloss.NewStyle().
		Foreground(White).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
}
