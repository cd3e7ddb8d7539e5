package radar

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	colorBackground = colorful.Color{R: 0x00 / 255.0, G: 0x10 / 255.0, B: 0x06 / 255.0}
	colorCenter     = mustHex("#00FF41")
	colorRing       = mustHex("#008F11")
	colorDot        = mustHex("#004A0A")
	colorTrail      = mustHex("#78FF8C")
	colorContact    = mustHex("#78FF8C")
	colorThreat     = mustHex("#FF4646")
	colorNeutral    = mustHex("#B4B4B4")
	colorCross      = mustHex("#C85A5A")
	colorLabel      = mustHex("#DCFFDC")
	colorLock       = mustHex("#FF8C78")
	colorLockMuted  = mustHex("#A0A0A0")
	colorMonitor    = mustHex("#50DC8C")
	colorReport     = mustHex("#FFA53C")
	colorMark       = mustHex("#78C8F0")
	colorParticle   = mustHex("#BEFFC8")
	colorReticle    = mustHex("#00FF41")

	styleLegContact = lipgloss.NewStyle().Foreground(lipgloss.Color(colorContact.Hex()))
	styleLegThreat  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorThreat.Hex()))
	styleLegNeutral = lipgloss.NewStyle().Foreground(lipgloss.Color(colorNeutral.Hex()))
	styleLegReticle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorReticle.Hex()))
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("radar: bad palette colour " + s)
	}
	return c
}

// fade blends c over the radar background at the given opacity, the
// terminal stand-in for an alpha channel.
func fade(c colorful.Color, alpha float64) colorful.Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return colorBackground
	}
	return colorBackground.BlendRgb(c, alpha).Clamped()
}

// sweepColor shades a background cell lit by the sweep.
func sweepColor(base colorful.Color, intensity float64) colorful.Color {
	if intensity <= 0 {
		return base
	}
	return base.BlendRgb(colorCenter, intensity*0.9).Clamped()
}
