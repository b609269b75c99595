package badge

import (
	"testing"

	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
)

func TestClassifyTier_Boundaries(t *testing.T) {
	tests := []struct {
		votes int
		want  model.Tier
	}{
		{0, model.TierNewcomer},
		{4, model.TierNewcomer},
		{5, model.TierExplorer},
		{14, model.TierExplorer},
		{15, model.TierEnthusiast},
		{29, model.TierEnthusiast},
		{30, model.TierExpert},
		{49, model.TierExpert},
		{50, model.TierMaster},
		{200, model.TierMaster},
	}

	for _, tt := range tests {
		if got := ClassifyTier(tt.votes); got != tt.want {
			t.Errorf("ClassifyTier(%d) = %s, want %s", tt.votes, got, tt.want)
		}
	}
}

func TestBadgeGateMatchesExplorerThreshold(t *testing.T) {
	// The badge evidence gate sits exactly at the Explorer boundary: anyone
	// eligible for a badge is at least an Explorer.
	if MinRatedMovies != tierExplorerVotes {
		t.Errorf("badge gate %d should equal Explorer threshold %d", MinRatedMovies, tierExplorerVotes)
	}
}
