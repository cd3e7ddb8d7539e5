package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/radar"
	"skyshield.klederson.com/internal/scope"
)

// RenderStatusBar renders the bottom status bar: connection, counts, sweep
// bearing, clock and the operator settings.
func RenderStatusBar(width int, f scope.Frame, cfg config.Scope, now time.Time) string {
	conn := StyleStatusOffline.Render("[" + f.Status + "]")
	if f.Connected {
		conn = StyleStatusRunning.Render("[" + f.Status + "]")
	}

	info := fmt.Sprintf(" Tracks: %d  Threats: %d  Sweep: %03ddeg  %s",
		f.Tracks, f.Threats, int(radar.SweepFrom(f.Sweep).Degrees()), now.Format("15:04:05"))

	settings := fmt.Sprintf("  Scan:%.3f Dens:%.1f ", cfg.ScanSpeed, cfg.Particles) +
		toggle("RET", cfg.Reticle) + " " + toggle("SND", cfg.Sound) + " " + toggle("QCK", cfg.QuickNeutralize)

	content := conn + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content) - lipgloss.Width(settings) - 2
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap) + settings)
}

func toggle(label string, on bool) string {
	if on {
		return StyleSettingOn.Render("[" + label + "]")
	}
	return StyleSettingOff.Render("[" + label + "]")
}
