package cmd

import (
	"errors"

	"github.com/theirongolddev/spend/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagEditDate     string
	flagEditCategory string
	flagEditAmount   string
)

var editCmd = &cobra.Command{
	Use:     "edit ID",
	Short:   "Change fields of a stored expense",
	Example: "  spend edit 3 --category Utilities --amount 75",
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date")
	editCmd.Flags().StringVar(&flagEditCategory, "category", "", "New category")
	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "New amount")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("date") && !flags.Changed("category") && !flags.Changed("amount") {
		return errors.New("nothing to change: pass --date, --category or --amount")
	}

	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	// Unchanged fields keep their stored values.
	cur, err := l.Select(cmd.Context(), id)
	if err != nil {
		return err
	}
	date, category := cur.Date, cur.Category
	amount := decimal.NewFromFloat(cur.Amount).String()
	if flags.Changed("date") {
		date = flagEditDate
	}
	if flags.Changed("category") {
		category = flagEditCategory
	}
	if flags.Changed("amount") {
		amount = flagEditAmount
	}

	e, err := l.Update(cmd.Context(), id, date, category, amount)
	if err != nil {
		return err
	}

	printf(cmd, "  Updated expense #%d: %s  %s  %s\n", e.ID, e.Date, e.Category, cli.FormatAmount(e.Amount))
	return nil
}
