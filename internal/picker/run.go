package picker

import "dunkest-picker/internal/player"

type Options struct {
	TopNPerPos        int
	CheapMaxCredits   float64
	PremiumMinCredits float64
	OverallLimit      int
	TeamShape         Shape
}

// Result bundles every ranking of one pick run.
type Result struct {
	Best         ByPosition
	Value        ByPosition
	GemsOverall  []player.Player
	Gems         ByPosition
	PremiumStars []player.Player
	Team         Team
}

func Run(players []player.Player, opts Options) Result {
	shape := opts.TeamShape
	if shape == nil {
		shape = DefaultShape()
	}
	return Result{
		Best:         BestByPosition(players, opts.TopNPerPos),
		Value:        ValueByPosition(players, opts.TopNPerPos),
		GemsOverall:  GemsOverall(players, opts.CheapMaxCredits, opts.OverallLimit),
		Gems:         GemsByPosition(players, opts.CheapMaxCredits, opts.TopNPerPos),
		PremiumStars: PremiumStars(players, opts.PremiumMinCredits, opts.OverallLimit),
		Team:         ProposedTeam(players, shape),
	}
}
