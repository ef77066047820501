package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dunkest-picker/internal/table"
)

func rec(kv ...string) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func TestNormPos(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"G", Guard},
		{"g", Guard},
		{"", Guard},
		{"PG", Guard},
		{"F", Forward},
		{"G-F", Forward},
		{"f/c", Center},
		{"C", Center},
		{"SF", Forward},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormPos(tc.in), "NormPos(%q)", tc.in)
	}
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 12.5, ToFloat("12,5", 0))
	assert.Equal(t, 7.0, ToFloat("  7 ", 0))
	assert.Equal(t, 3.0, ToFloat("", 3))
	assert.Equal(t, 3.0, ToFloat("None", 3))
	assert.Equal(t, 3.0, ToFloat("nan", 3))
	assert.Equal(t, -1.0, ToFloat("abc", -1))
	assert.Equal(t, 0.0, ToFloat("1,2,3", 0), "two separators is not a number")

	for _, missing := range []string{"NaN", "-NaN", "NAN", "nAn", "NA", "N/A", "null", "<NA>", " NaN "} {
		v := ToFloat(missing, 2)
		assert.False(t, math.IsNaN(v), "ToFloat(%q) is NaN", missing)
		assert.Equal(t, 2.0, v, "ToFloat(%q)", missing)
	}
}

func TestFromRecord_DerivedRates(t *testing.T) {
	p := FromRecord(4, rec(
		"first_name", " Nikola ", "last_name", "Jokic ",
		"team_code", "DEN", "team_name", "Denver",
		"position", "C", "cr", "20", "pdk", "1000",
		"gp", "50", "min", "1750", "pts", "1300,5",
	))

	assert.Equal(t, 4, p.Index)
	assert.Equal(t, "Nikola Jokic", p.Name)
	assert.Equal(t, "DEN", p.TeamCode)
	assert.Equal(t, Center, p.Pos)
	assert.Equal(t, 50.0, p.EffPerCredit)
	assert.Equal(t, 20.0, p.EffPerGame)
	assert.Equal(t, 35.0, p.MinPerGame)
	assert.Equal(t, 1300.5, p.PTS)
	assert.Equal(t, 0.0, p.REB, "missing stat columns default to zero")
}

func TestFromRecord_ZeroDenominators(t *testing.T) {
	p := FromRecord(0, rec("first_name", "A", "team_code", "X", "cr", "0", "pdk", "90", "gp", "0", "min", "300"))

	assert.Equal(t, 0.0, p.EffPerCredit)
	assert.Equal(t, 0.0, p.EffPerGame)
	assert.Equal(t, 0.0, p.MinPerGame)
}

func TestFromRecord_TeamCodeFallsBackWhenColumnAbsent(t *testing.T) {
	p := FromRecord(0, rec("first_name", "A", "team_name", "Boston"))
	assert.Equal(t, "Boston", p.TeamCode)

	p = FromRecord(0, rec("first_name", "A", "team_code", "", "team_name", "Boston"))
	assert.Equal(t, "", p.TeamCode, "present but empty code does not fall back")
}

func TestNormalize_FiltersAndDedupes(t *testing.T) {
	players := Normalize([]*Record{
		rec("first_name", "Ann", "last_name", "One", "team_code", "AAA", "pdk", "10"),
		rec("first_name", "", "last_name", "", "team_code", "AAA"),
		rec("first_name", "Bob", "last_name", "Two", "team_code", ""),
		rec("first_name", "Ann", "last_name", "One", "team_code", "AAA", "pdk", "99"),
		rec("first_name", "Ann", "last_name", "One", "team_code", "BBB", "pdk", "5"),
		rec("last_name", "Solo", "team_code", "CCC"),
	})

	require.Len(t, players, 3)
	assert.Equal(t, "Ann One", players[0].Name)
	assert.Equal(t, 10.0, players[0].PDK, "first duplicate wins")
	assert.Equal(t, 0, players[0].Index)
	assert.Equal(t, "BBB", players[1].TeamCode)
	assert.Equal(t, 4, players[1].Index)
	assert.Equal(t, "Solo", players[2].Name)
}

func TestLoad_FromRawCSV(t *testing.T) {
	tb := table.New("first_name", "last_name", "team_code", "position", "cr", "pdk", "gp", "min")
	tb.Append("Jalen", "Brunson", "NYK", "G", "16.5", "1200", "60", "2100")
	tb.Append("Mikal", "Bridges", "NYK", "G-F", "12", "900", "75", "2700")

	players := Load(tb)
	require.Len(t, players, 2)
	assert.Equal(t, Guard, players[0].Pos)
	assert.Equal(t, Forward, players[1].Pos)
	assert.Equal(t, 36.0, players[1].MinPerGame)
}

func TestPrettyTable(t *testing.T) {
	players := Normalize([]*Record{
		rec("first_name", "A", "last_name", "B", "team_code", "T", "team_name", "Team",
			"position", "F", "cr", "9", "gp", "3", "min", "100", "pdk", "45", "pts", "30"),
	})

	tb := PrettyTable(players)
	assert.Equal(t, PrettyColumns, tb.Header)
	require.Equal(t, 1, tb.Len())
	assert.Equal(t, []string{
		"A B", "T", "Team", "F",
		"9.0", "33.33",
		"30.0", "0.0", "0.0", "0.0", "0.0", "0.0",
		"45.0", "3.0", "100.0",
	}, tb.Rows[0])
}

func TestPrettyTable_MinProjRoundsHalfToEven(t *testing.T) {
	players := Normalize([]*Record{
		rec("first_name", "A", "last_name", "B", "team_code", "T", "position", "G", "gp", "8", "min", "201"),
		rec("first_name", "C", "last_name", "D", "team_code", "T", "position", "G", "gp", "8", "min", "203"),
	})

	tb := PrettyTable(players)
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "25.12", tb.Cell(0, "min_proj"), "25.125 rounds down to the even digit")
	assert.Equal(t, "25.38", tb.Cell(1, "min_proj"), "25.375 rounds up to the even digit")
}
