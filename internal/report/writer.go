package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dunkest-picker/internal/picker"
	"dunkest-picker/internal/player"
	"dunkest-picker/internal/table"
)

// RecapColumns are the columns of every ranked CSV.
var RecapColumns = []string{
	"name", "pos", "team_code", "credits", "pdk",
	"eff_per_credit", "eff_per_game", "gp", "min_per_game",
}

func recapCells(p player.Player) []string {
	f := table.FormatFloat
	return []string{
		p.Name, string(p.Pos), p.TeamCode, f(p.Credits), f(p.PDK),
		f(p.EffPerCredit), f(p.EffPerGame), f(p.GP), f(p.MinPerGame),
	}
}

func RecapTable(players []player.Player) *table.Table {
	t := table.New(RecapColumns...)
	for _, p := range players {
		t.Append(recapCells(p)...)
	}
	return t
}

// TaggedTable is RecapTable plus a trailing category column.
func TaggedTable(rows []picker.Tagged) *table.Table {
	t := table.New(append(append([]string{}, RecapColumns...), "category")...)
	for _, r := range rows {
		t.Append(append(recapCells(r.Player), r.Category)...)
	}
	return t
}

type FileSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

type TeamSummary struct {
	Players      int    `json:"players"`
	TotalCredits string `json:"total_credits"`
	TotalPDK     string `json:"total_pdk"`
}

type Summary struct {
	RunID          string        `json:"run_id"`
	GeneratedAtUTC string        `json:"generated_at_utc"`
	OutDir         string        `json:"out_dir"`
	Files          []FileSummary `json:"files"`
	Team           TeamSummary   `json:"team"`
}

// Writer saves ranked tables under OutDir and remembers what it wrote.
type Writer struct {
	OutDir string
	RunID  string
	files  []FileSummary
}

func NewWriter(outDir string) *Writer {
	return &Writer{OutDir: outDir, RunID: uuid.NewString()}
}

func (w *Writer) Save(name string, players []player.Player) (string, error) {
	return w.write(name, RecapTable(players))
}

func (w *Writer) SaveTagged(name string, rows []picker.Tagged) (string, error) {
	return w.write(name, TaggedTable(rows))
}

func (w *Writer) write(name string, t *table.Table) (string, error) {
	path := filepath.Join(w.OutDir, name)
	if err := t.Write(path); err != nil {
		return "", err
	}
	w.files = append(w.files, FileSummary{Name: name, Rows: t.Len()})
	log.Debug().Str("path", path).Int("rows", t.Len()).Msg("table saved")
	return path, nil
}

func (w *Writer) Files() []FileSummary {
	return append([]FileSummary(nil), w.files...)
}

// WriteSummary records the run id, every file written so far and the roster
// totals in summary.json.
func (w *Writer) WriteSummary(team picker.Team) (string, error) {
	abs, err := filepath.Abs(w.OutDir)
	if err != nil {
		abs = w.OutDir
	}
	s := Summary{
		RunID:          w.RunID,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		OutDir:         abs,
		Files:          w.Files(),
		Team: TeamSummary{
			Players:      len(team.Players),
			TotalCredits: team.TotalCredits.StringFixed(1),
			TotalPDK:     team.TotalPDK.StringFixed(1),
		},
	}

	path := filepath.Join(w.OutDir, "summary.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}

	b = append(b, '\n')
	return path, os.WriteFile(path, b, 0o644)
}
