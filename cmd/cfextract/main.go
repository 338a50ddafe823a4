// Command cfextract batch-extracts structured property data from Romanian
// land-registry ("Carte Funciara") PDF extracts into an XLSX report.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrei-lupu/cf-extract/internal/common"
)

var version = "dev"

var (
	cfgFile  string
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:           "cfextract",
		Short:         "Extract cadastral data from Carte Funciara PDF extracts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newProcessCmd(), newStatusCmd(), newErrorsCmd(), newResetCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() (*common.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
