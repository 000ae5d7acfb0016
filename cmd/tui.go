package cmd

import (
	"fmt"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/logging"
	"github.com/theirongolddev/spend/internal/tui"
	"github.com/theirongolddev/spend/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive expense tracker",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The TUI owns the terminal, so logs go to a file.
	logFile, err := logging.OpenFile(config.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := logging.Init(logFile, appCfg.Log.Level, false); err != nil {
		return err
	}

	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	log.Info().Int("expenses", l.Len()).Msg("tui starting")
	app := tui.NewApp(l, appCfg, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
