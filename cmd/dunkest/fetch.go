package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"dunkest-picker/internal/config"
	"dunkest-picker/internal/fetch"
	"dunkest-picker/internal/player"
	"dunkest-picker/internal/store"
)

func newFetchCmd() *cobra.Command {
	var f stageFlags
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download player stats and write the raw and pretty CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return runFetch(cmd.Context(), cfg, f.useCache)
		},
	}
	f.register(cmd, true, false)
	return cmd
}

func newClient(c *config.Config, useCache bool) *fetch.Client {
	client := fetch.NewClient(store.NewJSONStore(c.Fetch.RawRoot))
	client.BaseURL = c.Fetch.BaseURL
	client.UserAgent = c.Fetch.UserAgent
	client.HTTP.Timeout = c.Fetch.Timeout
	client.MaxAttempts = c.Fetch.MaxAttempts
	client.UseCache = useCache
	if c.Fetch.RatePerSecond > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(c.Fetch.RatePerSecond), 1)
	} else {
		client.Limiter = nil
	}
	return client
}

// runFetch is stage one: one stats table request, saved twice. The raw CSV
// keeps every field verbatim; the pretty CSV is the renamed, filtered view.
func runFetch(ctx context.Context, c *config.Config, useCache bool) error {
	start := time.Now()
	client := newClient(c, useCache)

	body, err := client.StatsTable(ctx, fetch.Query(c.Fetch.Query), !useCache)
	if err != nil {
		return fmt.Errorf("fetch stats table: %w", err)
	}

	recs, err := player.DecodeRows(body)
	if err != nil {
		return err
	}

	raw := player.RawTable(recs)
	if err := raw.Write(c.Files.RawCSV); err != nil {
		return err
	}
	log.Info().
		Str("path", c.Files.RawCSV).
		Int("rows", raw.Len()).
		Int("columns", len(raw.Header)).
		Msg("saved raw table (all fields as returned)")

	pretty := player.PrettyTable(player.Normalize(recs))
	if err := pretty.Write(c.Files.PrettyCSV); err != nil {
		return err
	}
	log.Info().
		Str("path", c.Files.PrettyCSV).
		Int("rows", pretty.Len()).
		Dur("duration", time.Since(start)).
		Msg("saved pretty table (credits, min_proj)")
	return nil
}
