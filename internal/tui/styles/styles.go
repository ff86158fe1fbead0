package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber     = lipgloss.Color("#E5A00D")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Blue      = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Amber).
			Padding(0, 1)

	MatchStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Underline(true)
)

// Tab styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Bold(true).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DimGray).
				Padding(0, 2)
)

// Panel styles
var (
	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 2)

	BarStyle = lipgloss.NewStyle().
			Foreground(Blue)
)

// Spinner animation frames
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
