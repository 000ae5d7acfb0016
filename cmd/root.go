// Package cmd implements the spend CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/logging"
	"github.com/theirongolddev/spend/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagDBPath   string
	flagQuiet    bool
	flagLogLevel string
)

// appCfg is the effective configuration: file, then env, then flags.
var appCfg config.Config

var rootCmd = &cobra.Command{
	Use:               "spend",
	Short:             "Personal expense tracker",
	Long:              "Record expenses by date and category and see where the money goes.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the expenses database (env "+config.EnvDBPath+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
}

// prepare loads .env and the config file, applies flag overrides and
// points the logger at stderr. The TUI re-targets it to a file.
func prepare(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.General.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	appCfg = cfg

	level := cfg.Log.Level
	if flagQuiet {
		level = "error"
	}
	if err := logging.Init(cmd.ErrOrStderr(), level, true); err != nil {
		return err
	}
	log.Debug().Str("db", cfg.DBPath()).Str("config", config.Path()).Msg("configuration loaded")
	return nil
}

// openLedger opens the database and loads every stored expense.
// The returned func closes the database.
func openLedger(ctx context.Context) (*ledger.Ledger, func(), error) {
	g, err := store.Open(appCfg.DBPath())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := g.Close(); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}

	l := ledger.New(g)
	if err := l.Load(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return l, closeFn, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid expense id %q", s)
	}
	return id, nil
}

// printf writes to the command's stdout unless --quiet is set.
func printf(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
