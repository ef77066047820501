// Package picker ranks normalized players: best scorers, best value for the
// credit cost, cheap gems, premium stars and a proposed roster.
//
// Every ordering is stable, so players that tie on all keys keep their
// source row order.
package picker

import (
	"fmt"
	"sort"

	"dunkest-picker/internal/player"
)

// Metric reads one sortable number off a player.
type Metric func(p player.Player) float64

func PDK(p player.Player) float64          { return p.PDK }
func EffPerCredit(p player.Player) float64 { return p.EffPerCredit }
func MinPerGame(p player.Player) float64   { return p.MinPerGame }

// Descending orders by the first metric, falling through to the next one on
// equality.
func Descending(keys ...Metric) func(a, b player.Player) bool {
	return func(a, b player.Player) bool {
		for _, k := range keys {
			va, vb := k(a), k(b)
			if va != vb {
				return va > vb
			}
		}
		return false
	}
}

// Top returns the first n players under less without touching the input.
func Top(players []player.Player, n int, less func(a, b player.Player) bool) []player.Player {
	out := make([]player.Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func Filter(players []player.Player, keep func(p player.Player) bool) []player.Player {
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func AtPosition(pos player.Position) func(p player.Player) bool {
	return func(p player.Player) bool { return p.Pos == pos }
}

// Priced drops players without a positive credit cost; value metrics are
// meaningless for them.
func Priced(players []player.Player) []player.Player {
	return Filter(players, func(p player.Player) bool { return p.Credits > 0 })
}

// ByPosition holds one ranked list per position bucket.
type ByPosition map[player.Position][]player.Player

func TopByPosition(players []player.Player, n int, less func(a, b player.Player) bool) ByPosition {
	out := make(ByPosition, len(player.Positions))
	for _, pos := range player.Positions {
		out[pos] = Top(Filter(players, AtPosition(pos)), n, less)
	}
	return out
}

// BestByPosition ranks every player by raw score.
func BestByPosition(players []player.Player, n int) ByPosition {
	return TopByPosition(players, n, Descending(PDK))
}

// ValueByPosition ranks priced players by score per credit.
func ValueByPosition(players []player.Player, n int) ByPosition {
	return TopByPosition(Priced(players), n, Descending(EffPerCredit))
}

func cheap(maxCredits float64) func(p player.Player) bool {
	return func(p player.Player) bool { return p.Credits <= maxCredits }
}

// GemsOverall ranks priced players costing at most maxCredits by score, then
// by score per credit.
func GemsOverall(players []player.Player, maxCredits float64, limit int) []player.Player {
	pool := Filter(Priced(players), cheap(maxCredits))
	return Top(pool, limit, Descending(PDK, EffPerCredit))
}

func GemsByPosition(players []player.Player, maxCredits float64, n int) ByPosition {
	pool := Filter(Priced(players), cheap(maxCredits))
	return TopByPosition(pool, n, Descending(PDK, EffPerCredit))
}

// PremiumStars ranks priced players costing at least minCredits by score.
func PremiumStars(players []player.Player, minCredits float64, limit int) []player.Player {
	pool := Filter(Priced(players), func(p player.Player) bool { return p.Credits >= minCredits })
	return Top(pool, limit, Descending(PDK))
}

// Tagged is a ranked player labelled with the list it came from.
type Tagged struct {
	player.Player
	Category string
}

// Categorize flattens per-position lists in G, F, C order.
func Categorize(byPos ByPosition, format string) []Tagged {
	var out []Tagged
	for _, pos := range player.Positions {
		label := fmt.Sprintf(format, pos)
		for _, p := range byPos[pos] {
			out = append(out, Tagged{Player: p, Category: label})
		}
	}
	return out
}
