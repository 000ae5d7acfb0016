package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagListCategory string
	flagListLimit    int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded expenses",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Only show this category (case-insensitive)")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 0, "Show only the most recent N expenses")
	rootCmd.AddCommand(listCmd)
}

// filterExpenses applies --category and then --limit, keeping insertion order.
func filterExpenses(items []model.Expense, category string, limit int) []model.Expense {
	var out []model.Expense
	for _, e := range items {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		out = append(out, e)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func runList(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	items := filterExpenses(l.Expenses(), flagListCategory, flagListLimit)
	if len(items) == 0 {
		printf(cmd, "\n  No expenses found.\n")
		return nil
	}

	rows := make([][]string, 0, len(items)+2)
	for _, e := range items {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			e.Category,
			cli.FormatAmount(e.Amount),
		})
	}
	s := ledger.Summarize(items)
	rows = append(rows, []string{"---"}, []string{"", "", "Total", cli.FormatAmount(s.Total)})

	printf(cmd, "\n%s\n", cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Expenses (%s)", cli.FormatCount(len(items), "expense")),
		Headers: []string{"ID", "Date", "Category", "Amount"},
		Rows:    rows,
	}))
	return nil
}
