package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"facilities/internal/app"
	"facilities/internal/platform/config"
	"facilities/internal/platform/logger"
)

type rootFlags struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "facilitiesctl",
		Short:         "Run facility reload passes against the configured stores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file (overrides FACILITIES_CONFIG_FILE)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newReloadCmd(flags))
	cmd.AddCommand(newPushCmd(flags))
	cmd.AddCommand(newLastCmd(flags))

	return cmd
}

// withApp loads configuration, builds the app and hands it to fn. Logs go to
// stderr so stdout carries only the JSON report.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, a *app.App) error) error {
	if flags.configFile != "" {
		if err := os.Setenv("FACILITIES_CONFIG_FILE", flags.configFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	log := logger.NewWithWriters(lvl, cmd.ErrOrStderr())
	slog.SetDefault(log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
