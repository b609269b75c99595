package service

import (
	"context"

	"github.com/zgkmail/watchornot/watchornot-go/internal/badge"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/internal/repository"
)

// repoPreferenceSource adapts the rating and preference repositories to the
// badge engine's PreferenceSource interface.
type repoPreferenceSource struct {
	ratings *repository.RatingRepo
	prefs   *repository.PreferenceRepo
}

// NewPreferenceSource builds the engine's data collaborator over Postgres.
func NewPreferenceSource(ratings *repository.RatingRepo, prefs *repository.PreferenceRepo) badge.PreferenceSource {
	return &repoPreferenceSource{ratings: ratings, prefs: prefs}
}

func (s *repoPreferenceSource) UserRatings(ctx context.Context, userID string) ([]model.Rating, error) {
	return s.ratings.ListByUser(ctx, userID)
}

func (s *repoPreferenceSource) GenrePreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error) {
	return s.prefs.AggregatesByKind(ctx, userID, badge.FactorGenre)
}

func (s *repoPreferenceSource) DirectorPreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error) {
	return s.prefs.AggregatesByKind(ctx, userID, badge.FactorDirector)
}

func (s *repoPreferenceSource) CastPreferences(ctx context.Context, userID string) (map[string]model.PreferenceAggregate, error) {
	return s.prefs.AggregatesByKind(ctx, userID, badge.FactorCast)
}

func (s *repoPreferenceSource) MovieGenres(ctx context.Context, userID, movieID string) ([]string, error) {
	return s.ratings.MovieGenres(ctx, userID, movieID)
}
