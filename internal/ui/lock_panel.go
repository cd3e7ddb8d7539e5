package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/scope"
)

// RenderLockPanel renders the lock info summary for the locked target.
func RenderLockPanel(info scope.LockInfo, width, height int, now time.Time) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("TARGET LOCK")
	lines := []string{title, StyleSeparator.Render(strings.Repeat("-", innerW))}

	border := StylePanelBorder
	if !info.Locked {
		lines = append(lines, "", StyleHelp.Render("  "+info.Label), StyleHelp.Render("  Status    "+info.Status))
		lines = append(lines, "", StyleHelp.Render("  [tab] lock next  [click] lock"))
		return renderPanel(border, lines, width, height)
	}

	valSty := StyleFieldValue
	switch {
	case info.Neutralized:
		valSty = StyleNeutralValue
	case info.Threat:
		border = StylePanelThreat
	default:
		border = StylePanelActive
	}

	labelSty := valSty
	if info.Threat && !info.Neutralized {
		labelSty = StyleThreatValue
	}

	fields := []struct {
		label string
		value string
		sty   lipgloss.Style
	}{
		{"Target", info.Label, labelSty},
		{"Status", info.Status, valSty},
		{"Source", orNA(info.Source), valSty},
		{"Last", formatLastSeen(info.LastSeen, now), valSty},
		{"Position", fmt.Sprintf("%+.3f, %+.3f", info.X, info.Y), valSty},
		{"Altitude", optional(info.HasAlt, "%.1f m", info.Alt), valSty},
		{"Speed", optional(info.HasHeading, "%.3f u/s", info.Speed), valSty},
		{"Heading", heading(info), valSty},
		{"Action", orNA(string(info.Action)), actionStyle(string(info.Action))},
	}

	for _, f := range fields {
		lines = append(lines, StyleFieldLabel.Render(fmt.Sprintf("  %-10s", f.label))+f.sty.Render(f.value))
	}

	lines = append(lines, "")

	if info.HasRSSI {
		barWidth := innerW - 22
		if barWidth < 10 {
			barWidth = 10
		}
		lines = append(lines, StyleFieldLabel.Render("  Signal    ")+renderSignalBar(info.RSSI, barWidth)+
			valSty.Render(fmt.Sprintf(" %ddBm", int(info.RSSI))))
		if info.HasTrend {
			lines = append(lines, StyleFieldLabel.Render("  Trend     ")+valSty.Render(formatTrend(info.RSSITrend)))
		}
	}

	if len(info.RSSIHistory) > 1 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(renderSparkline(info.RSSIHistory, sparkW)))
	}

	compassH := height - len(lines) - 3
	if info.HasHeading && compassH >= 5 {
		compassW := innerW
		if compassW > compassH*3 {
			compassW = compassH * 3
		}
		color := signalColor(info.RSSI)
		if info.Threat {
			color = ColorThreat
		}
		if info.Neutralized {
			color = ColorNeutral
		}
		bearing := info.HeadingDeg*math.Pi/180 + math.Pi/2
		if compass := RenderCompass(compassW, compassH, bearing, info.Speed, color); compass != "" {
			prefix := strings.Repeat(" ", max(0, (innerW-compassW)/2))
			for _, cl := range strings.Split(compass, "\n") {
				lines = append(lines, prefix+cl)
			}
		}
	}

	return renderPanel(border, lines, width, height)
}

// renderPanel boxes lines and clamps the result to exactly height rows.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func renderPanel(border lipgloss.Style, lines []string, width, height int) string {
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	rendered := border.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))

	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func heading(info scope.LockInfo) string {
	if !info.HasHeading {
		return "N/A"
	}
	return fmt.Sprintf("%03.0f° %s", info.HeadingDeg, bearingToDir(info.HeadingDeg*math.Pi/180+math.Pi/2))
}

func optional(ok bool, format string, v float64) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func renderSignalBar(rssi float64, width int) string {
	// Map RSSI -100..-30 to 0..width filled bars
	ratio := math.Max(0, math.Min(1, (rssi+100.0)/70.0))
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(signalColor(rssi)).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for _, v := range values[start:] {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func formatLastSeen(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now (" + t.Format("15:04:05") + ")"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm ago", int(d.Minutes()))
}

// formatTrend describes the signal slope. Under half a dB per second reads
// as steady.
func formatTrend(dbPerSec float64) string {
	switch {
	case dbPerSec >= 0.5:
		return fmt.Sprintf("%+.1f dB/s closing", dbPerSec)
	case dbPerSec <= -0.5:
		return fmt.Sprintf("%+.1f dB/s opening", dbPerSec)
	}
	return "steady"
}
