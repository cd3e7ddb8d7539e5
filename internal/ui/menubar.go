package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, variant config.Variant, running bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"S", "tart"},
		{"P", "stop"},
		{"N", "eutralize"},
		{"?", "help"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := StyleStatusStopped.Render("STOPPED")
	if running {
		status = StyleStatusRunning.Render("RUNNING")
	}

	mode := StyleMenuLabel.Render(fmt.Sprintf("Mode: %s", variant))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + mode + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
