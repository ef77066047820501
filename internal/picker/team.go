package picker

import (
	"github.com/shopspring/decimal"

	"dunkest-picker/internal/player"
)

// Shape is how many roster spots each position gets.
type Shape map[player.Position]int

func DefaultShape() Shape {
	return Shape{player.Guard: 4, player.Forward: 4, player.Center: 4}
}

// ShapeFrom converts a config map keyed by "G", "F", "C".
func ShapeFrom(m map[string]int) Shape {
	s := make(Shape, len(m))
	for k, v := range m {
		s[player.NormPos(k)] = v
	}
	return s
}

func (s Shape) Size() int {
	n := 0
	for _, pos := range player.Positions {
		n += s[pos]
	}
	return n
}

type Team struct {
	Players      []player.Player
	TotalCredits decimal.Decimal
	TotalPDK     decimal.Decimal
}

// teamOrder prefers value, then raw score, then playing time.
var teamOrder = Descending(EffPerCredit, PDK, MinPerGame)

// ProposedTeam fills each position bucket, in G, F, C order, with the best
// value priced players. A bucket short of candidates is returned short.
func ProposedTeam(players []player.Player, shape Shape) Team {
	priced := Priced(players)

	team := Team{
		Players:      make([]player.Player, 0, shape.Size()),
		TotalCredits: decimal.Zero,
		TotalPDK:     decimal.Zero,
	}
	for _, pos := range player.Positions {
		k := shape[pos]
		if k <= 0 {
			continue
		}
		for _, p := range Top(Filter(priced, AtPosition(pos)), k, teamOrder) {
			team.Players = append(team.Players, p)
			team.TotalCredits = team.TotalCredits.Add(decimal.NewFromFloat(p.Credits))
			team.TotalPDK = team.TotalPDK.Add(decimal.NewFromFloat(p.PDK))
		}
	}
	return team
}
