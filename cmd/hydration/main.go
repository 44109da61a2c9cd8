package main

import (
	"io"
	"os"

	"hydration-tracker/internal/config"
	"hydration-tracker/internal/ledger"
	"hydration-tracker/internal/logger"
	"hydration-tracker/internal/store"

	"github.com/spf13/cobra"
)

const serverAnnotation = "server"

var (
	configFile string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hydration",
		Short:        "Track daily water intake",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load(configFile)
			logger.Init(cfg.Log, logger.WithConsole(consoleFor(cmd)), logger.WithAttrs("cmd", cmd.Name()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (e.g. etc/config.yaml)")

	rootCmd.AddCommand(apiCmd())
	rootCmd.AddCommand(webCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(drinkCmd())
	rootCmd.AddCommand(goalCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(remoteCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// consoleFor keeps log lines off stdout for commands that print results there.
func consoleFor(cmd *cobra.Command) io.Writer {
	if _, ok := cmd.Annotations[serverAnnotation]; ok {
		return os.Stdout
	}
	return os.Stderr
}

// openLedger opens the local store from config and loads today's ledger.
func openLedger() (*ledger.Ledger, func() error, error) {
	s, err := store.OpenSQLite(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, err
	}
	l := ledger.New(s)
	if err := l.Initialize(); err != nil {
		s.Close()
		return nil, nil, err
	}
	return l, s.Close, nil
}
