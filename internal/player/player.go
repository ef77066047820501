package player

import (
	"math"
	"strconv"
	"strings"

	"dunkest-picker/internal/table"
)

type Position string

const (
	Guard   Position = "G"
	Forward Position = "F"
	Center  Position = "C"
)

// Positions is the fixed bucket order used by every per-position report.
var Positions = []Position{Guard, Forward, Center}

// NormPos folds the API's free-form position ("G", "G-F", "F/C", ...) into a
// bucket. Any C wins, then any F, everything else is a guard.
func NormPos(p string) Position {
	p = strings.ToUpper(p)
	switch {
	case strings.Contains(p, "C"):
		return Center
	case strings.Contains(p, "F"):
		return Forward
	default:
		return Guard
	}
}

// missingCells are the spellings of an absent value that stats exports use.
var missingCells = map[string]bool{
	"": true, "None": true, "nan": true, "NaN": true, "NA": true,
	"N/A": true, "n/a": true, "null": true, "NULL": true, "<NA>": true,
}

// ToFloat parses a stats cell, accepting a decimal comma. Missing-value
// markers, NaN in any spelling and anything unparsable give def.
func ToFloat(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if missingCells[s] {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return def
	}
	return v
}

type Player struct {
	Index    int // row position in the source file
	Name     string
	TeamCode string
	TeamName string
	Pos      Position

	Credits float64
	PDK     float64
	GP      float64
	Minutes float64

	PTS float64
	REB float64
	AST float64
	STL float64
	BLK float64
	TOV float64

	EffPerCredit float64
	EffPerGame   float64
	MinPerGame   float64
}

// FromRecord normalizes one raw row and derives its rate columns.
func FromRecord(idx int, r *Record) Player {
	first := strings.TrimSpace(r.Get("first_name"))
	last := strings.TrimSpace(r.Get("last_name"))

	teamCode := r.Get("team_code")
	if !r.Has("team_code") {
		teamCode = r.Get("team_name")
	}

	p := Player{
		Index:    idx,
		Name:     strings.TrimSpace(first + " " + last),
		TeamCode: teamCode,
		TeamName: r.Get("team_name"),
		Pos:      NormPos(r.Get("position")),
		Credits:  ToFloat(r.Get("cr"), 0),
		PDK:      ToFloat(r.Get("pdk"), 0),
		GP:       ToFloat(r.Get("gp"), 0),
		Minutes:  ToFloat(r.Get("min"), 0),
		PTS:      ToFloat(r.Get("pts"), 0),
		REB:      ToFloat(r.Get("reb"), 0),
		AST:      ToFloat(r.Get("ast"), 0),
		STL:      ToFloat(r.Get("stl"), 0),
		BLK:      ToFloat(r.Get("blk"), 0),
		TOV:      ToFloat(r.Get("tov"), 0),
	}
	if p.Credits > 0 {
		p.EffPerCredit = p.PDK / p.Credits
	}
	if p.GP > 0 {
		p.EffPerGame = p.PDK / p.GP
		p.MinPerGame = p.Minutes / p.GP
	}
	return p
}

type playerKey struct {
	name string
	team string
}

// Normalize converts raw rows into players, dropping rows without a name or
// team code and repeated (name, team code) pairs after the first.
func Normalize(recs []*Record) []Player {
	out := make([]Player, 0, len(recs))
	seen := make(map[playerKey]bool, len(recs))
	for i, r := range recs {
		p := FromRecord(i, r)
		if p.Name == "" || p.TeamCode == "" {
			continue
		}
		k := playerKey{name: p.Name, team: p.TeamCode}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// Load normalizes the rows of a raw CSV.
func Load(t *table.Table) []Player {
	return Normalize(RecordsFromTable(t))
}

var PrettyColumns = []string{
	"name", "team_code", "team_name", "pos",
	"credits", "min_proj",
	"pts", "reb", "ast", "stl", "blk", "tov",
	"pdk", "gp", "min_total",
}

// PrettyTable is the tidy view written next to the raw CSV: renamed fields
// plus minutes per game (min_proj) rounded to two decimals.
func PrettyTable(players []Player) *table.Table {
	t := table.New(PrettyColumns...)
	f := table.FormatFloat
	for _, p := range players {
		t.Append(
			p.Name, p.TeamCode, p.TeamName, string(p.Pos),
			f(p.Credits), f(round2(p.MinPerGame)),
			f(p.PTS), f(p.REB), f(p.AST), f(p.STL), f(p.BLK), f(p.TOV),
			f(p.PDK), f(p.GP), f(p.Minutes),
		)
	}
	return t
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
