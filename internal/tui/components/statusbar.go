package components

import (
	"strings"

	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints or a flash
// message on the left, totals on the right.
func RenderStatusBar(width int, flash string, flashErr bool, totals string) string {
	t := theme.Active
	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if flash != "" {
		color := t.Green
		if flashErr {
			color = t.Red
		}
		left = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(" " + flash)
	}
	right := base.Render(totals + " ")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).
		Render(left + base.Render(strings.Repeat(" ", gap)) + right)
}
