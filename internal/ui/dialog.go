package ui

import (
	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/scope"
)

// RenderConfirm renders the action confirmation dialog centered in a
// width x height area.
func RenderConfirm(c *scope.Confirmation, width, height int) string {
	if c == nil {
		return ""
	}
	boxW := min(56, max(20, width-8))
	title := StyleStatusStopped.Render("CONFIRM " + string(c.Action))
	body := lipgloss.NewStyle().Width(boxW - 6).Render(c.Prompt())
	hint := StyleMenuKey.Render("[y]") + StyleMenuLabel.Render("es  ") +
		StyleMenuKey.Render("[n]") + StyleMenuLabel.Render("o")

	box := StyleDialog.Width(boxW).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
