package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTabBarWidthMatchesTabs(t *testing.T) {
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, want)
		assert.Equal(t, want, lipgloss.Width(bar))
		assert.Contains(t, bar, "2 Summary")
	}
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('1'))
	assert.Equal(t, 2, TabIdxByKey('3'))
	assert.Equal(t, -1, TabIdxByKey('x'))
}

func TestStatusBarShowsFlash(t *testing.T) {
	bar := RenderStatusBar(80, "Added expense #3", false, "3 expenses · 150.00")
	assert.Equal(t, 80, lipgloss.Width(bar))
	assert.Contains(t, bar, "Added expense #3")
	assert.NotContains(t, bar, "[q]uit")

	bar = RenderStatusBar(80, "", false, "")
	assert.Contains(t, bar, "[q]uit")
}

func TestShareBarWidth(t *testing.T) {
	out := ShareBar("Groceries", 0.5, "#ff0000", 10, 20)
	assert.Equal(t, 10+1+20+1+6, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(stripANSI(out), "Groceries"))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
