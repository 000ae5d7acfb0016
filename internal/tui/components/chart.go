package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Terminal cells are roughly twice as tall as wide, so the disc is
// stretched horizontally by this factor to look round.
const cellAspect = 2

// cumulative returns the running share of each value, ending at 1.
// It returns nil when nothing positive is left to draw.
func cumulative(values []float64) []float64 {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return nil
	}

	out := make([]float64, len(values))
	run := 0.0
	for i, v := range values {
		if v > 0 {
			run += v
		}
		out[i] = run / total
	}
	return out
}

// sliceAt returns the index of the slice covering frac (0 at twelve
// o'clock, increasing clockwise), or -1 if there are no slices.
// Zero-weight slices never cover anything.
func sliceAt(cum []float64, frac float64) int {
	last := -1
	prev := 0.0
	for i, c := range cum {
		if c > prev {
			if frac < c {
				return i
			}
			last = i
		}
		prev = c
	}
	return last
}

// PieChart renders values as a filled disc of the given radius in rows.
// Slice i is drawn in colors[i % len(colors)]. With nothing to draw it
// renders a dotted outline instead.
func PieChart(values []float64, colors []lipgloss.Color, radius int) string {
	t := theme.Active
	radius = max(radius, 1)
	cum := cumulative(values)

	bg := lipgloss.NewStyle().Background(t.Surface)
	empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	r := float64(radius) + 0.5
	var b strings.Builder
	for y := -radius; y <= radius; y++ {
		if y > -radius {
			b.WriteString("\n")
		}

		// Cells are grouped into runs of one color to keep escapes short.
		run, runColor := 0, -2
		flush := func() {
			if run == 0 {
				return
			}
			switch runColor {
			case -2:
				b.WriteString(bg.Render(strings.Repeat(" ", run)))
			case -1:
				b.WriteString(empty.Render(strings.Repeat("·", run)))
			default:
				style := lipgloss.NewStyle().Foreground(colors[runColor%len(colors)]).Background(t.Surface)
				b.WriteString(style.Render(strings.Repeat("█", run)))
			}
			run = 0
		}

		for x := -radius * cellAspect; x <= radius*cellAspect; x++ {
			fx := float64(x) / cellAspect
			fy := float64(y)
			c := -2
			if fx*fx+fy*fy <= r*r {
				c = -1
				if cum != nil && len(colors) > 0 {
					angle := math.Atan2(fx, -fy)
					if angle < 0 {
						angle += 2 * math.Pi
					}
					c = sliceAt(cum, angle/(2*math.Pi))
				}
			}
			if c != runColor {
				flush()
				runColor = c
			}
			run++
		}
		flush()
	}
	return b.String()
}

// PieWidth returns the rendered width of a PieChart of the given radius.
func PieWidth(radius int) int {
	return 2*max(radius, 1)*cellAspect + 1
}

// LegendEntry describes one line of a chart legend.
type LegendEntry struct {
	Label  string
	Amount float64
	Share  float64
	Color  lipgloss.Color
}

// PieLegend renders a swatch, label, share and amount per entry. Entries
// with zero amount are listed too so every category stays visible.
func PieLegend(entries []LegendEntry, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(entries) == 0 {
		return mutedStyle.Render("No expenses yet")
	}

	labelW := 0
	for _, e := range entries {
		labelW = max(labelW, lipgloss.Width(e.Label))
	}
	// swatch(2) + share(7) + amount(14) + spacing(3)
	labelW = min(labelW, max(width-26, 6))

	lines := make([]string, len(entries))
	for i, e := range entries {
		swatch := lipgloss.NewStyle().Foreground(e.Color).Background(t.Surface).Render("■ ")
		lines[i] = swatch +
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, cli.Truncate(e.Label, labelW))) +
			mutedStyle.Render(fmt.Sprintf(" %7s", cli.FormatPercent(e.Share))) +
			labelStyle.Render(fmt.Sprintf("  %12s", cli.FormatAmount(e.Amount)))
	}
	return strings.Join(lines, "\n")
}
