package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	TMDBTeal   = lipgloss.Color("#01B4E4")
	TMDBGreen  = lipgloss.Color("#90CEA1")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
	Yellow     = lipgloss.Color("#F5C518")
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
			Foreground(TMDBTeal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(TMDBGreen)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Yellow)
)

// Section header shown above each group of list rows
var SectionStyle = lipgloss.NewStyle().
	Foreground(TMDBTeal).
	Bold(true).
	MarginTop(1)

// Pin marker for the current season
const PinChar = "📌"

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(TMDBTeal)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(TMDBTeal)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(TMDBTeal).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(TMDBTeal).
				Bold(true)
)

// Detail pane border
var DetailStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(DimGray).
	Padding(0, 1)

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// RenderRow renders a list row, padded to width, highlighted when selected
func RenderRow(text string, selected bool, width int) string {
	if selected {
		return SelectedItemStyle.Width(width).MaxWidth(width).Render(text)
	}
	return NormalItemStyle.Width(width).MaxWidth(width).Render(text)
}

// HighlightMatches renders s with the bytes at the given offsets emphasized
func HighlightMatches(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}
	var out string
	for i, r := range s {
		if hit[i] {
			out += MatchHighlightStyle.Render(string(r))
		} else {
			out += string(r)
		}
	}
	return out
}
