package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the radar panel and the side column (lock info over the
// feed list) horizontally, with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, radarPanel, lockPanel, feedList, statusBar string) string {
	side := lipgloss.JoinVertical(lipgloss.Left, lockPanel, feedList)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// Split divides the terminal between the radar panel and the side column.
// The side column gets a third of the width, within sane bounds.
func Split(width int) (radarW, sideW int) {
	sideW = max(30, min(width/3, 48))
	if sideW > width-20 {
		sideW = max(0, width-20)
	}
	return width - sideW, sideW
}
