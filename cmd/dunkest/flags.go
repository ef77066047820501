package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dunkest-picker/internal/config"
)

// stageFlags are the per-command overrides layered on top of the config file.
type stageFlags struct {
	useCache  bool
	rawRoot   string
	rawCSV    string
	prettyCSV string
	outDir    string
	topN      int
}

func (f *stageFlags) register(cmd *cobra.Command, fetch, pick bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.rawCSV, "raw-csv", "players_raw.csv", "raw CSV written by fetch and read by pick")
	if fetch {
		fl.BoolVar(&f.useCache, "use-cache", false, "reuse the last stored API payload instead of calling the API")
		fl.StringVar(&f.rawRoot, "raw-root", "data/raw", "directory for stored API payloads")
		fl.StringVar(&f.prettyCSV, "pretty-csv", "players_pretty.csv", "tidy CSV written by fetch")
	}
	if pick {
		fl.StringVar(&f.outDir, "out-dir", "out", "directory for ranked CSV files")
		fl.IntVar(&f.topN, "top-n", 10, "rows per position in the per-position tables")
	}
}

// apply copies explicitly set flags into c, leaving unset ones alone, and
// re-validates the result.
func (f *stageFlags) apply(cmd *cobra.Command, c *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("raw-csv") {
		c.Files.RawCSV = f.rawCSV
	}
	if fl.Changed("raw-root") {
		c.Fetch.RawRoot = f.rawRoot
	}
	if fl.Changed("pretty-csv") {
		c.Files.PrettyCSV = f.prettyCSV
	}
	if fl.Changed("out-dir") {
		c.Files.OutDir = f.outDir
	}
	if fl.Changed("top-n") {
		c.Picker.TopNPerPos = f.topN
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
