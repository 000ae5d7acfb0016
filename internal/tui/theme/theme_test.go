package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByNameFallsBack(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("no-such-theme").Name)
	assert.True(t, Valid("terminal"))
	assert.False(t, Valid(""))
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestSliceColorWraps(t *testing.T) {
	n := len(FlexokiDark.Slices())
	assert.Equal(t, FlexokiDark.SliceColor(0), FlexokiDark.SliceColor(n))
	assert.Equal(t, FlexokiDark.Accent, FlexokiDark.SliceColor(-1))
}
