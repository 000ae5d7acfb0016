package cmd

import (
	"github.com/theirongolddev/spend/internal/cli"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add DATE CATEGORY AMOUNT",
	Short:   "Record a new expense",
	Example: "  spend add 2024-01-31 Groceries 42.50",
	Args:    cobra.ExactArgs(3),
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	e, err := l.Add(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}

	printf(cmd, "  Added expense #%d: %s  %s  %s\n", e.ID, e.Date, e.Category, cli.FormatAmount(e.Amount))
	return nil
}
