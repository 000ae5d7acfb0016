package cmd

import (
	"strings"

	"github.com/theirongolddev/spend/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := appCfg

	printf(cmd, "  Config file: %s\n", config.Path())
	if config.Exists() {
		printf(cmd, "  Status: loaded\n")
	} else {
		printf(cmd, "  Status: using defaults (no config file)\n")
	}
	printf(cmd, "\n")

	printf(cmd, "  [General]\n")
	printf(cmd, "    Database:         %s\n", cfg.DBPath())
	printf(cmd, "    Default category: %s\n", cfg.General.DefaultCategory)
	printf(cmd, "    Date format:      %s\n", cfg.General.DateFormat)
	printf(cmd, "    Confirm delete:   %v\n", cfg.General.ConfirmDelete)
	printf(cmd, "\n")

	printf(cmd, "  [Ledger]\n")
	printf(cmd, "    Categories: %s\n", strings.Join(cfg.Ledger.Categories, ", "))
	printf(cmd, "\n")

	printf(cmd, "  [Appearance]\n")
	printf(cmd, "    Theme: %s\n", cfg.Appearance.Theme)
	printf(cmd, "\n")

	printf(cmd, "  [Log]\n")
	printf(cmd, "    Level:    %s\n", cfg.Log.Level)
	printf(cmd, "    TUI log:  %s\n", config.LogPath())
	printf(cmd, "\n")

	printf(cmd, "  Run `spend setup` to reconfigure.\n")
	return nil
}
