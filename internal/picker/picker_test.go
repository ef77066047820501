package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dunkest-picker/internal/player"
)

// mk builds a player with derived rates filled the way player.FromRecord does.
func mk(idx int, name string, pos player.Position, credits, pdk, gp, minutes float64) player.Player {
	p := player.Player{
		Index:    idx,
		Name:     name,
		TeamCode: "T",
		Pos:      pos,
		Credits:  credits,
		PDK:      pdk,
		GP:       gp,
		Minutes:  minutes,
	}
	if credits > 0 {
		p.EffPerCredit = pdk / credits
	}
	if gp > 0 {
		p.EffPerGame = pdk / gp
		p.MinPerGame = minutes / gp
	}
	return p
}

func names(ps []player.Player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestTop_StableOnTies(t *testing.T) {
	ps := []player.Player{
		mk(0, "a", player.Guard, 10, 100, 1, 1),
		mk(1, "b", player.Guard, 10, 200, 1, 1),
		mk(2, "c", player.Guard, 10, 100, 1, 1),
		mk(3, "d", player.Guard, 10, 200, 1, 1),
	}

	got := Top(ps, -1, Descending(PDK))
	assert.Equal(t, []string{"b", "d", "a", "c"}, names(got))
	assert.Equal(t, "a", ps[0].Name, "input is not reordered")

	assert.Equal(t, []string{"b", "d"}, names(Top(ps, 2, Descending(PDK))))
	assert.Len(t, Top(ps, 10, Descending(PDK)), 4)
	assert.Empty(t, Top(ps, 0, Descending(PDK)))
}

func TestDescending_FallsThroughKeys(t *testing.T) {
	less := Descending(PDK, EffPerCredit)
	hi := mk(0, "hi", player.Guard, 5, 100, 1, 1)
	lo := mk(1, "lo", player.Guard, 10, 100, 1, 1)

	assert.True(t, less(hi, lo))
	assert.False(t, less(lo, hi))
	assert.False(t, less(hi, hi))
}

func TestBestByPosition(t *testing.T) {
	ps := []player.Player{
		mk(0, "g1", player.Guard, 10, 50, 1, 1),
		mk(1, "f1", player.Forward, 0, 300, 1, 1),
		mk(2, "g2", player.Guard, 10, 80, 1, 1),
		mk(3, "c1", player.Center, 10, 10, 1, 1),
		mk(4, "g3", player.Guard, 10, 60, 1, 1),
	}

	got := BestByPosition(ps, 2)
	assert.Equal(t, []string{"g2", "g3"}, names(got[player.Guard]))
	assert.Equal(t, []string{"f1"}, names(got[player.Forward]), "unpriced players still rank by score")
	assert.Equal(t, []string{"c1"}, names(got[player.Center]))
}

func TestBestByPosition_NaNScoreRanksAsZero(t *testing.T) {
	var recs []*player.Record
	for i, pdk := range []string{"10", "NaN", "50", "40", "30", "20"} {
		r := player.NewRecord()
		r.Set("first_name", string(rune('a'+i)))
		r.Set("team_code", "T")
		r.Set("position", "G")
		r.Set("cr", "10")
		r.Set("pdk", pdk)
		recs = append(recs, r)
	}

	got := BestByPosition(player.Normalize(recs), 10)
	assert.Equal(t, []string{"c", "d", "e", "f", "a", "b"}, names(got[player.Guard]))
}

func TestValueByPosition_SkipsUnpriced(t *testing.T) {
	ps := []player.Player{
		mk(0, "free", player.Forward, 0, 900, 1, 1),
		mk(1, "cheap", player.Forward, 5, 100, 1, 1),
		mk(2, "pricey", player.Forward, 20, 300, 1, 1),
	}

	got := ValueByPosition(ps, 10)
	assert.Equal(t, []string{"cheap", "pricey"}, names(got[player.Forward]))
	assert.Empty(t, got[player.Guard])
	assert.Contains(t, got, player.Center)
}

func TestGems(t *testing.T) {
	ps := []player.Player{
		mk(0, "limit", player.Guard, 8, 100, 1, 1),
		mk(1, "over", player.Guard, 8.5, 500, 1, 1),
		mk(2, "tie-cheaper", player.Center, 4, 100, 1, 1),
		mk(3, "unpriced", player.Guard, 0, 999, 1, 1),
		mk(4, "top", player.Forward, 6, 150, 1, 1),
	}

	overall := GemsOverall(ps, 8, 50)
	assert.Equal(t, []string{"top", "tie-cheaper", "limit"}, names(overall))

	assert.Equal(t, []string{"top"}, names(GemsOverall(ps, 8, 1)))

	byPos := GemsByPosition(ps, 8, 10)
	assert.Equal(t, []string{"limit"}, names(byPos[player.Guard]))
	assert.Equal(t, []string{"tie-cheaper"}, names(byPos[player.Center]))
}

func TestPremiumStars(t *testing.T) {
	ps := []player.Player{
		mk(0, "edge", player.Guard, 15, 100, 1, 1),
		mk(1, "below", player.Guard, 14.9, 900, 1, 1),
		mk(2, "star", player.Center, 25, 400, 1, 1),
	}

	assert.Equal(t, []string{"star", "edge"}, names(PremiumStars(ps, 15, 50)))
	assert.Empty(t, PremiumStars(ps, 30, 50))
}

func TestCategorize_OrderAndLabels(t *testing.T) {
	byPos := ByPosition{
		player.Center:  {mk(0, "c", player.Center, 1, 1, 1, 1)},
		player.Guard:   {mk(1, "g1", player.Guard, 1, 1, 1, 1), mk(2, "g2", player.Guard, 1, 1, 1, 1)},
		player.Forward: nil,
	}

	got := Categorize(byPos, "Best %s by pdk")
	require.Len(t, got, 3)
	assert.Equal(t, "g1", got[0].Name)
	assert.Equal(t, "Best G by pdk", got[0].Category)
	assert.Equal(t, "c", got[2].Name)
	assert.Equal(t, "Best C by pdk", got[2].Category)
}

func TestRun_UsesOptions(t *testing.T) {
	ps := []player.Player{
		mk(0, "g", player.Guard, 5, 50, 10, 200),
		mk(1, "f", player.Forward, 16, 400, 10, 300),
		mk(2, "c", player.Center, 7, 70, 10, 250),
	}

	res := Run(ps, Options{TopNPerPos: 10, CheapMaxCredits: 8, PremiumMinCredits: 15, OverallLimit: 50})
	assert.Equal(t, []string{"f"}, names(res.PremiumStars))
	assert.Equal(t, []string{"c", "g"}, names(res.GemsOverall))
	assert.Equal(t, []string{"g", "f", "c"}, names(res.Team.Players), "nil shape falls back to 4/4/4")
}
