// Package cli implements chartctl, which renders the charts from a CSV
// file without running the server.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/lifecharts/internal/config"
	"github.com/JonMunkholm/lifecharts/internal/core"
	"github.com/JonMunkholm/lifecharts/internal/logging"
)

// Execute runs chartctl and exits non-zero on error.
func Execute() {
	// Unlike the server, existing env vars win over .env here.
	_ = godotenv.Load()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	dataPath       string
	defaultCountry string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	opts := &options{
		dataPath:       envOr("DATA_PATH", defaults.Data.Path),
		defaultCountry: envOr("CHART_DEFAULT_COUNTRY", defaults.Chart.DefaultCountry),
		logLevel:       envOr("LOG_LEVEL", "warn"),
	}

	cmd := &cobra.Command{
		Use:          "chartctl",
		Short:        "Inspect the life expectancy dataset and render its charts",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, "text"))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dataPath, "data", "d", opts.dataPath, "CSV file to read")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "debug, info, warn or error")

	cmd.AddCommand(countriesCmd(opts))
	cmd.AddCommand(limitsCmd(opts))
	cmd.AddCommand(renderCmd(opts))
	return cmd
}

// load reads the dataset named by --data.
func (o *options) load(ctx context.Context) (*core.Dataset, error) {
	ds, err := core.FileSource{Path: o.dataPath}.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "path", o.dataPath, "rows", ds.Len())
	return ds, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
