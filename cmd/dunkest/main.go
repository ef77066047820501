// Command dunkest pulls Dunkest fantasy basketball stats and ranks players.
//
// Usage:
//
//	dunkest fetch                 # stats API -> players_raw.csv, players_pretty.csv
//	dunkest pick                  # players_raw.csv -> out/*.csv
//	dunkest run                   # fetch, then pick
//	dunkest pick --config dunkest.yaml --out-dir results
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dunkest-picker/internal/config"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"

	cfgFile  string
	logLevel string
	logJSON  bool

	cfg *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	code := exitCode(ctx, err)
	stop()
	os.Exit(code)
}

func exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return 130
	case errors.Is(err, fs.ErrNotExist):
		log.Error().Err(err).Msg("missing input; run `dunkest fetch` first or check --raw-csv")
		return 1
	default:
		log.Error().Err(err).Msg("dunkest failed")
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dunkest",
		Short: "Dunkest fantasy basketball stats fetcher and picker",
		Long: `dunkest fetches player statistics from the Dunkest stats API, normalizes
them into CSV files and ranks players by score, value for credits, cheap gems
and premium stars, finishing with a proposed 12-player roster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(logLevel, logJSON); err != nil {
				return err
			}
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (defaults are used when omitted)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit JSON logs instead of console output")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newPickCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print dunkest version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dunkest %s\n", Version)
		},
	})
	return root
}

func setupLogging(level string, asJSON bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if asJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return nil
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func newRunCmd() *cobra.Command {
	var f stageFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch stats, then rank players",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			if err := runFetch(cmd.Context(), cfg, f.useCache); err != nil {
				return err
			}
			return runPick(cfg)
		},
	}
	f.register(cmd, true, true)
	return cmd
}
