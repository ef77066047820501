package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dunkest-picker/internal/config"
	"dunkest-picker/internal/picker"
	"dunkest-picker/internal/player"
	"dunkest-picker/internal/report"
	"dunkest-picker/internal/table"
)

func newPickCmd() *cobra.Command {
	var f stageFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Rank players from the raw CSV and write the result tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return runPick(cfg)
		},
	}
	f.register(cmd, false, true)
	return cmd
}

func pickOptions(c *config.Config) picker.Options {
	return picker.Options{
		TopNPerPos:        c.Picker.TopNPerPos,
		CheapMaxCredits:   c.Picker.CheapMaxCredits,
		PremiumMinCredits: c.Picker.PremiumMinCredits,
		OverallLimit:      c.Picker.OverallLimit,
		TeamShape:         picker.ShapeFrom(c.Picker.TeamShape),
	}
}

// runPick is stage two: load the raw CSV, rank, print and save.
func runPick(c *config.Config) error {
	return pick(c, report.NewPrinter(os.Stdout, c.Picker.PrintMaxRows))
}

func pick(c *config.Config, pr *report.Printer) error {
	start := time.Now()

	raw, err := table.Read(c.Files.RawCSV)
	if err != nil {
		return err
	}
	players := player.Load(raw)
	log.Info().Str("path", c.Files.RawCSV).Int("rows", raw.Len()).Int("players", len(players)).Msg("loaded raw table")

	opts := pickOptions(c)
	res := picker.Run(players, opts)

	w := report.NewWriter(c.Files.OutDir)
	if err := publish(w, pr, opts, res); err != nil {
		return err
	}

	if _, err := w.WriteSummary(res.Team); err != nil {
		return err
	}
	abs, err := filepath.Abs(c.Files.OutDir)
	if err != nil {
		abs = c.Files.OutDir
	}
	pr.Line("")
	pr.Line("CSV files written to: %s", abs)
	log.Info().Str("run_id", w.RunID).Int("files", len(w.Files())).Dur("duration", time.Since(start)).Msg("pick finished")
	return nil
}

func publish(w *report.Writer, pr *report.Printer, opts picker.Options, res picker.Result) error {
	// 1) best per position by raw score
	if err := saveByPosition(w, pr, res.Best, "best_%s.csv", "Best %s (pdk)"); err != nil {
		return err
	}
	if _, err := w.SaveTagged("best_by_pos_all.csv", picker.Categorize(res.Best, "Best %s by pdk")); err != nil {
		return err
	}

	// 2) best value per position (pdk/credits), unpriced players excluded
	if err := saveByPosition(w, pr, res.Value, "value_%s.csv", "Value %s (pdk/credits)"); err != nil {
		return err
	}
	if _, err := w.SaveTagged("value_by_pos_all.csv", picker.Categorize(res.Value, "Value %s")); err != nil {
		return err
	}

	// 3) cheap gems, overall then per position
	if _, err := w.Save("gems_overall.csv", res.GemsOverall); err != nil {
		return err
	}
	pr.Players(fmt.Sprintf("Cheap gems (credits <= %.1f)", opts.CheapMaxCredits), res.GemsOverall)
	if err := saveByPosition(w, pr, res.Gems, "gems_%s.csv", "Cheap gems %s"); err != nil {
		return err
	}
	if _, err := w.SaveTagged("gems_by_pos_all.csv", picker.Categorize(res.Gems, "Gems %s")); err != nil {
		return err
	}

	// 4) premium stars
	if _, err := w.Save("premium_stars.csv", res.PremiumStars); err != nil {
		return err
	}
	pr.Players(fmt.Sprintf("Premium stars (credits >= %.1f)", opts.PremiumMinCredits), res.PremiumStars)

	// 5) proposed roster
	shape := opts.TeamShape
	if _, err := w.Save(fmt.Sprintf("proposed_team_%d.csv", shape.Size()), res.Team.Players); err != nil {
		return err
	}
	pr.Players(fmt.Sprintf("Proposed team (%dG/%dF/%dC) by value",
		shape[player.Guard], shape[player.Forward], shape[player.Center]), res.Team.Players)
	pr.Line("")
	pr.Line("Total credits: %s | Total pdk: %s",
		res.Team.TotalCredits.StringFixed(1), res.Team.TotalPDK.StringFixed(1))
	return nil
}

func saveByPosition(w *report.Writer, pr *report.Printer, byPos picker.ByPosition, fileFmt, titleFmt string) error {
	for _, pos := range player.Positions {
		if _, err := w.Save(fmt.Sprintf(fileFmt, pos), byPos[pos]); err != nil {
			return err
		}
		pr.Players(fmt.Sprintf(titleFmt, pos), byPos[pos])
	}
	return nil
}

