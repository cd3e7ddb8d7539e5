package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/scope"
)

// Rows and columns the radar panel adds around the radar canvas: the border,
// the banner row above and the legend row below.
const (
	RadarOffsetCol  = 1
	RadarOffsetRow  = 2
	radarChromeRows = 4
)

// RadarCanvasSize returns the canvas dimensions that fit a panel of the given size.
func RadarCanvasSize(width, height int) (int, int) {
	return max(0, width-2), max(0, height-radarChromeRows)
}

// RenderRadarPanel wraps radar content with a styled border, the lock banner
// on top and the legend, or the detection overlay, below.
// The actual radar rendering is done externally to avoid import cycles.
func RenderRadarPanel(width, height int, radarContent, legend string, banner scope.Banner, overlay string) string {
	innerW := width - 2
	top := RenderBanner(banner, innerW)
	bottom := legend
	if overlay != "" {
		bottom = RenderOverlay(overlay, innerW)
	}
	content := strings.Join([]string{top, radarContent, bottom}, "\n")
	return StylePanelBorder.Width(innerW).Height(height - 2).Render(content)
}

// RenderBanner renders the transient lock banner centered in width, or a
// blank row when it is hidden.
func RenderBanner(b scope.Banner, width int) string {
	if !b.Visible || b.Text == "" {
		return ""
	}
	sty := StyleBanner
	text := "LOCKED  " + b.Text
	if b.Muted {
		sty = StyleBannerMuted
		text = b.Text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, sty.Render(truncRaw(text, width-4)))
}

// RenderOverlay renders the detection flash.
func RenderOverlay(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		StyleThreatValue.Render("!! "+truncRaw(strings.ToUpper(text), width-6)+" !!"))
}
