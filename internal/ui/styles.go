package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette with threat accents
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorThreat       = lipgloss.Color("#FF4646")
	ColorNeutral      = lipgloss.Color("#B4B4B4")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorMonitor      = lipgloss.Color("#50DC8C")
	ColorReport       = lipgloss.Color("#FFA53C")
	ColorMark         = lipgloss.Color("#78C8F0")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusRunning = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleStatusStopped = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusOffline = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelThreat = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorThreat)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleFieldLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleFieldValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleThreatValue = lipgloss.NewStyle().
				Foreground(ColorThreat).
				Bold(true)

	StyleNeutralValue = lipgloss.NewStyle().
				Foreground(ColorNeutral)

	StyleFeedTime = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleFeedText = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleSettingOn = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleSettingOff = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleBanner = lipgloss.NewStyle().
			Background(lipgloss.Color("#3A0A0A")).
			Foreground(lipgloss.Color("#FFDCDC")).
			Bold(true).
			Padding(0, 2)

	StyleBannerMuted = lipgloss.NewStyle().
				Background(lipgloss.Color("#2A2A2A")).
				Foreground(ColorNeutral).
				Padding(0, 2)

	StyleOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorThreat).
			Foreground(ColorThreat).
			Bold(true).
			Padding(0, 3)

	StyleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Foreground(ColorMatrixGreen).
			Padding(1, 2)
)

// actionStyle colors an action tag the same way the radar badges do.
func actionStyle(action string) lipgloss.Style {
	switch action {
	case "monitor":
		return lipgloss.NewStyle().Foreground(ColorMonitor).Bold(true)
	case "report":
		return lipgloss.NewStyle().Foreground(ColorReport).Bold(true)
	case "mark":
		return lipgloss.NewStyle().Foreground(ColorMark).Bold(true)
	case "neutralize":
		return StyleNeutralValue
	}
	return StyleFieldValue
}
