package badge

import (
	"context"
	"math"

	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/pkg/listfield"
)

// maxCastMembers caps how many leading cast members contribute to the cast
// adjustment, so large ensembles cannot dominate the average.
const maxCastMembers = 3

// PreferenceSource supplies the engine with a user's rating history and
// precomputed per-factor preference aggregates. Implementations must return
// a mutually consistent snapshot for a single badge calculation; the engine
// never retries or caches and propagates source errors unmodified.
type PreferenceSource interface {
	UserRatings(ctx context.Context, userID string) ([]model.Rating, error)
	GenrePreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error)
	DirectorPreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error)
	CastPreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error)

	// MovieGenres returns the stored per-movie genre membership, which is
	// authoritative over the candidate's own genre list when present. An
	// empty result (no mapping stored) is not an error.
	MovieGenres(ctx context.Context, userID, movieID string) ([]string, error)
}

// Engine calculates recommendation badges. Construct once and share; all
// methods are safe for concurrent use.
type Engine struct {
	prefs PreferenceSource
}

func NewEngine(prefs PreferenceSource) *Engine {
	return &Engine{prefs: prefs}
}

// badgeLevel maps an adjusted-score threshold (inclusive) to a badge.
type badgeLevel struct {
	threshold   float64
	badge       model.Badge
	emoji       string
	description string
}

// badgeLevels are checked in order; the first matching threshold wins.
var badgeLevels = []badgeLevel{
	{8.0, model.BadgePerfectMatch, "🎯", "This is right up your alley!"},
	{6.5, model.BadgeGreatPick, "⭐", "You'll probably enjoy this"},
	{5.0, model.BadgeWorthATry, "👍", "Give it a shot"},
	{3.5, model.BadgeMixedFeelings, "🤷", "Could go either way"},
}

var badgeFloor = badgeLevel{math.Inf(-1), model.BadgeNotYourStyle, "❌", "Probably skip this"}

func classifyBadge(adjustedScore float64) badgeLevel {
	for _, lvl := range badgeLevels {
		if adjustedScore >= lvl.threshold {
			return lvl
		}
	}
	return badgeFloor
}

// CalculateBadge scores one candidate title against the user's taste
// history and returns a badge, or (nil, nil) when there is not enough
// evidence: no base score, or fewer than MinRatedMovies qualifying rated
// movies after excluding the candidate itself.
//
// excludeMovieID retracts one stored rating's contribution from both the
// evidence count and the preference aggregates before scoring. Callers pass
// the candidate's own movie ID whenever the candidate is already present in
// the history, so a movie cannot justify its own score with its own vote.
// An empty excludeMovieID, or one matching no stored rating, changes
// nothing.
func (e *Engine) CalculateBadge(ctx context.Context, movie model.CandidateMovie, userID, excludeMovieID string) (*model.BadgeResult, error) {
	if movie.BaseScore == 0 {
		return nil, nil
	}

	history, err := e.prefs.UserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}

	var excluded *model.Rating
	totalVotes := 0
	for i := range history {
		r := &history[i]
		if excludeMovieID != "" && r.MovieID == excludeMovieID {
			excluded = r
			continue
		}
		if r.Voted() {
			totalVotes++
		}
	}

	if totalVotes < MinRatedMovies {
		return nil, nil
	}

	tier := ClassifyTier(totalVotes)

	genreAdj, err := e.genreAdjustment(ctx, movie, userID, excluded)
	if err != nil {
		return nil, err
	}

	var directorAdj float64
	if len(movie.Directors) > 0 {
		prefs, err := e.prefs.DirectorPreferences(ctx, userID)
		if err != nil {
			return nil, err
		}
		directorAdj = factorAdjustment(prefs, movie.Directors, FactorDirector, excluded)
	}

	var castAdj float64
	if len(movie.Cast) > 0 {
		prefs, err := e.prefs.CastPreferences(ctx, userID)
		if err != nil {
			return nil, err
		}
		castAdj = factorAdjustment(prefs, listfield.FirstN(movie.Cast, maxCastMembers), FactorCast, excluded)
	}

	adjustedScore := movie.BaseScore + genreAdj + directorAdj + castAdj
	lvl := classifyBadge(adjustedScore)

	return &model.BadgeResult{
		Badge:         lvl.badge,
		Emoji:         lvl.emoji,
		Description:   lvl.description,
		Tier:          tier,
		TotalVotes:    totalVotes,
		BaseScore:     movie.BaseScore,
		AdjustedScore: round1(adjustedScore),
		Adjustments: model.Adjustments{
			Genre:    round1(genreAdj),
			Director: round1(directorAdj),
			Cast:     round1(castAdj),
		},
	}, nil
}

// genreAdjustment resolves the candidate's genre list, preferring the
// stored per-movie mapping over the candidate's own list, and averages the
// per-genre curve scores.
func (e *Engine) genreAdjustment(ctx context.Context, movie model.CandidateMovie, userID string, excluded *model.Rating) (float64, error) {
	genres, err := e.prefs.MovieGenres(ctx, userID, movie.MovieID)
	if err != nil {
		return 0, err
	}
	if len(genres) == 0 {
		genres = movie.Genres
	}
	if len(genres) == 0 {
		return 0, nil
	}

	prefs, err := e.prefs.GenrePreferences(ctx, userID)
	if err != nil {
		return 0, err
	}
	return factorAdjustment(prefs, genres, FactorGenre, excluded), nil
}

// factorAdjustment averages the curve score over every factor value that
// has vote data, after retracting the excluded rating's own contribution.
// Values with no aggregate or a zero vote count are omitted from the
// average rather than treated as neutral. No usable data yields 0.
func factorAdjustment(prefs map[string]model.PreferenceAggregate, values []string, kind FactorKind, excluded *model.Rating) float64 {
	var sum float64
	n := 0
	for _, value := range values {
		agg, ok := prefs[value]
		if !ok {
			continue
		}
		agg = excludeOwnVote(agg, excluded, kind, value)
		total := agg.Total()
		if total == 0 {
			continue
		}
		ratio := float64(agg.ThumbsUp) / float64(total)
		sum += scoreFactor(ratio, kind)
		n++
	}
	if n == 0 {
		return 0
	}

	c := curveFor(kind)
	return clamp(sum/float64(n), c.min, c.max)
}

// excludeOwnVote removes the excluded rating's vote from an aggregate when
// that rating carries the factor value being scored, floored at zero.
// Seen-but-not-voted ratings contribute nothing to aggregates, so they
// retract nothing either.
func excludeOwnVote(agg model.PreferenceAggregate, excluded *model.Rating, kind FactorKind, value string) model.PreferenceAggregate {
	if excluded == nil || !excluded.Voted() || !ratingHasFactor(excluded, kind, value) {
		return agg
	}

	switch *excluded.Vote {
	case model.VoteUp:
		if agg.ThumbsUp > 0 {
			agg.ThumbsUp--
		}
	case model.VoteDown:
		if agg.ThumbsDown > 0 {
			agg.ThumbsDown--
		}
	}
	return agg
}

func ratingHasFactor(r *model.Rating, kind FactorKind, value string) bool {
	switch kind {
	case FactorGenre:
		return listfield.Contains(r.Genres, value)
	case FactorDirector:
		return listfield.Contains(r.Directors, value)
	case FactorCast:
		// Aggregates only count the leading cast members, so exclusion
		// checks the same window.
		return listfield.Contains(listfield.FirstN(r.Cast, maxCastMembers), value)
	default:
		return false
	}
}

// round1 rounds to one decimal for presentation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
