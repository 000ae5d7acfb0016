package cmd

import (
	"github.com/theirongolddev/spend/internal/cli"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one stored expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	e, err := l.Select(cmd.Context(), id)
	if err != nil {
		return err
	}

	printf(cmd, "  ID:       %d\n", e.ID)
	printf(cmd, "  Date:     %s\n", e.Date)
	printf(cmd, "  Category: %s\n", e.Category)
	printf(cmd, "  Amount:   %s\n", cli.FormatAmount(e.Amount))
	return nil
}
