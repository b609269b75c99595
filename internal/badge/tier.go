package badge

import "github.com/zgkmail/watchornot/watchornot-go/internal/model"

// Vote-count thresholds for engagement tiers, highest first.
const (
	tierMasterVotes     = 50
	tierExpertVotes     = 30
	tierEnthusiastVotes = 15
	tierExplorerVotes   = 5
)

// MinRatedMovies is the evidence gate: below this many qualifying rated
// movies (excluding the candidate itself) no badge is produced.
const MinRatedMovies = 5

// ClassifyTier maps the number of rated movies to an engagement tier.
func ClassifyTier(totalVotes int) model.Tier {
	switch {
	case totalVotes >= tierMasterVotes:
		return model.TierMaster
	case totalVotes >= tierExpertVotes:
		return model.TierExpert
	case totalVotes >= tierEnthusiastVotes:
		return model.TierEnthusiast
	case totalVotes >= tierExplorerVotes:
		return model.TierExplorer
	default:
		return model.TierNewcomer
	}
}
