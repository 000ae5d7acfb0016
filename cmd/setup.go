package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := appCfg
	vals := tui.SetupValuesFrom(cfg)

	if err := tui.NewSetupForm(vals, cfg.Ledger.Categories).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			printf(cmd, "  Setup cancelled, nothing saved.\n")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := config.Save(vals.Apply(cfg)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	printf(cmd, "\n  Saved to %s\n", config.Path())
	printf(cmd, "  Run `spend setup` anytime to reconfigure.\n\n")
	return nil
}
