package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/spend/internal/cli"

	"github.com/spf13/cobra"
)

var flagSummaryChart bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total spend and per-category breakdown",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&flagSummaryChart, "chart", false, "Draw a bar per category")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s := l.Summary()
	if s.Count == 0 {
		printf(cmd, "\n  No expenses recorded yet.\n")
		printf(cmd, "  Add one with: spend add DATE CATEGORY AMOUNT\n")
		return nil
	}

	printf(cmd, "\n%s\n\n", cli.RenderTitle(fmt.Sprintf("SPEND  %s", cli.FormatCount(s.Count, "expense"))))

	rows := make([][]string, 0, len(s.Categories)+2)
	for _, c := range s.Categories {
		rows = append(rows, []string{
			c.Category,
			cli.FormatNumber(int64(c.Count)),
			cli.FormatAmount(c.Total),
			cli.FormatPercent(c.Share),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatNumber(int64(s.Count)), cli.FormatAmount(s.Total), ""})

	printf(cmd, "%s", cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Count", "Amount", "Share"},
		Rows:    rows,
	}))

	if flagSummaryChart {
		labelW := 0
		for _, c := range s.Categories {
			labelW = max(labelW, len(c.Category))
		}
		peak := s.Categories[0].Total

		var b strings.Builder
		for _, c := range s.Categories {
			label := fmt.Sprintf("%-*s %12s", labelW, c.Category, cli.FormatAmount(c.Total))
			b.WriteString(cli.RenderHorizontalBar(label, c.Total, peak, 30))
			b.WriteString("\n")
		}
		printf(cmd, "\n%s", b.String())
	}
	return nil
}
