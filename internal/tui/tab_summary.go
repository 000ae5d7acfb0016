package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxPieRadius = 8
	minPieRadius = 2
)

// pieRadius fits the disc into the rows left under the metric cards.
func pieRadius(contentH int) int {
	// metric cards (4) + chart card border and title (3)
	avail := contentH - 7
	return min(max((avail-1)/2, minPieRadius), maxPieRadius)
}

func (a App) renderSummaryTab(cw, contentH int) string {
	t := theme.Active
	s := a.chart.summary

	largest := "-"
	if len(s.Categories) > 0 {
		largest = s.Categories[0].Category
	}
	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Total Spend", Value: cli.FormatAmount(s.Total)},
		{Label: "Expenses", Value: cli.FormatNumber(int64(s.Count))},
		{Label: "Categories", Value: cli.FormatNumber(int64(len(s.Categories)))},
		{Label: "Top Category", Value: largest},
	}, cw)

	colors := make([]lipgloss.Color, len(s.Categories))
	entries := make([]components.LegendEntry, len(s.Categories))
	for i, c := range s.Categories {
		colors[i] = t.SliceColor(i)
		entries[i] = components.LegendEntry{
			Label:  c.Category,
			Amount: c.Total,
			Share:  c.Share,
			Color:  colors[i],
		}
	}

	radius := pieRadius(contentH)
	halves := components.LayoutRow(cw, 2)

	pie := components.PieChart(s.Amounts(), colors, radius)
	legendW := components.CardInnerWidth(halves[0]) - components.PieWidth(radius) - 2
	gap := lipgloss.NewStyle().Background(t.Surface).Render("  ")
	chartBody := lipgloss.JoinHorizontal(lipgloss.Top, pie, gap, components.PieLegend(entries, legendW))

	chartCard := components.ContentCard("Spend by Category", chartBody, halves[0])
	detailCard := components.ContentCard("Share of Total", a.renderShareBars(halves[1], colors), halves[1])

	var b strings.Builder
	b.WriteString(metrics)
	b.WriteString("\n")
	b.WriteString(components.CardRow([]string{chartCard, detailCard}))
	return b.String()
}

func (a App) renderShareBars(outerW int, colors []lipgloss.Color) string {
	t := theme.Active
	s := a.chart.summary
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(s.Categories) == 0 {
		return mutedStyle.Render("Add an expense to see the breakdown.")
	}

	inner := components.CardInnerWidth(outerW)
	labelW := 14
	barW := max(inner-labelW-8, 4)

	var b strings.Builder
	for i, c := range s.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.ShareBar(c.Category, c.Share, colors[i], labelW, barW))

		amounts := a.chart.byCategory[c.Category]
		largest := 0.0
		for _, v := range amounts {
			largest = max(largest, v)
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s %s, largest %s",
			labelW, "", cli.FormatCount(len(amounts), "expense"), cli.FormatAmount(largest))))
	}
	return b.String()
}
