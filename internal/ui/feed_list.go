package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/scope"
)

// RenderFeedList renders the recent-events list, newest first.
func RenderFeedList(entries []scope.FeedEntry, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render("FEED")
	count := StyleHelp.Render(fmt.Sprintf("%d", len(entries)))
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(count))) + count

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW))}
	if len(entries) == 0 {
		lines = append(lines, StyleHelp.Render("  waiting for contacts..."))
	}

	space := height - 2 - len(lines)
	for i := 0; i < len(entries) && i < space; i++ {
		e := entries[i]
		stamp := e.At.Format("15:04:05")
		text := truncRaw(e.Label, innerW-len(stamp)-1)
		lines = append(lines, StyleFeedTime.Render(stamp)+" "+StyleFeedText.Render(text))
	}

	return renderPanel(StylePanelBorder, lines, width, height)
}

// truncRaw truncates s to at most w runes.
func truncRaw(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s
}
