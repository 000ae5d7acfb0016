package components

import (
	"strings"

	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs, in display order.
var Tabs = []Tab{
	{Name: "Expenses", Key: '1'},
	{Name: "Summary", Key: '2'},
	{Name: "Settings", Key: '3'},
}

func tabLabel(tab Tab) string {
	return string(tab.Key) + " " + tab.Name
}

func tabStyle(active bool) lipgloss.Style {
	t := theme.Active
	s := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return s.Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	}
	return s.Foreground(t.TextMuted).Background(t.Surface)
}

// TabVisualWidth returns the rendered width of a tab. The mouse hit test
// relies on it matching RenderTabBar exactly.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(tabStyle(active).Render(tabLabel(tab)))
}

// RenderTabBar renders the single-row tab bar, tabs separated by one column.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = tabStyle(i == activeIdx).Render(tabLabel(tab))
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
