package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCumulative(t *testing.T) {
	assert.Nil(t, cumulative(nil))
	assert.Nil(t, cumulative([]float64{0, 0}))
	assert.Equal(t, []float64{0.25, 0.25, 1}, cumulative([]float64{1, 0, 3}))
}

func TestSliceAt(t *testing.T) {
	cum := cumulative([]float64{1, 0, 3})

	assert.Equal(t, 0, sliceAt(cum, 0))
	assert.Equal(t, 0, sliceAt(cum, 0.2))
	assert.Equal(t, 2, sliceAt(cum, 0.25))
	assert.Equal(t, 2, sliceAt(cum, 0.99))
	// Rounding can push frac to 1; the last real slice still owns it.
	assert.Equal(t, 2, sliceAt(cum, 1))
	assert.Equal(t, -1, sliceAt(nil, 0.5))
}

func TestPieChartDimensions(t *testing.T) {
	colors := []lipgloss.Color{"#ff0000", "#00ff00"}
	for _, radius := range []int{1, 3, 6} {
		out := PieChart([]float64{1, 2}, colors, radius)
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2*radius+1)
		for i, line := range lines {
			assert.Equal(t, PieWidth(radius), lipgloss.Width(line), "radius=%d line=%d", radius, i)
		}
	}
}

func TestPieChartSingleSliceFillsDisc(t *testing.T) {
	out := PieChart([]float64{5}, []lipgloss.Color{"#ff0000"}, 3)
	assert.Contains(t, out, "█")
	assert.NotContains(t, out, "·")
}

func TestPieChartEmptyDrawsOutline(t *testing.T) {
	out := PieChart(nil, []lipgloss.Color{"#ff0000"}, 3)
	assert.Contains(t, out, "·")
	assert.NotContains(t, out, "█")
}

func TestPieLegendListsZeroEntries(t *testing.T) {
	out := PieLegend([]LegendEntry{
		{Label: "Rent", Amount: 1200, Share: 1, Color: "#ff0000"},
		{Label: "Other", Amount: 0, Share: 0, Color: "#00ff00"},
	}, 60)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1,200.00")
	assert.Contains(t, lines[0], "100.0%")
	assert.Contains(t, lines[1], "Other")
	assert.Contains(t, lines[1], "0.0%")

	assert.Contains(t, PieLegend(nil, 60), "No expenses")
}
