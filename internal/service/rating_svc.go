package service

import (
	"context"
	"fmt"
	"log"

	"github.com/zgkmail/watchornot/watchornot-go/internal/badge"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/internal/repository"
	"github.com/zgkmail/watchornot/watchornot-go/pkg/listfield"
)

type RatingService struct {
	ratings *repository.RatingRepo
	prefs   *repository.PreferenceRepo
	engine  *badge.Engine
	cache   *CacheService
}

func NewRatingService(ratings *repository.RatingRepo, prefs *repository.PreferenceRepo, engine *badge.Engine, cache *CacheService) *RatingService {
	return &RatingService{ratings: ratings, prefs: prefs, engine: engine, cache: cache}
}

// Submit persists a rating and returns the badge for the freshly rated
// movie, computed with the movie's own vote excluded so it cannot bias its
// own score. The badge is null when the user hasn't rated enough movies yet.
func (s *RatingService) Submit(ctx context.Context, req model.RatingRequest) (*model.RatingResponse, error) {
	if req.Rating != nil && !model.ValidVotes[*req.Rating] {
		return nil, fmt.Errorf("invalid rating: %s", *req.Rating)
	}

	rating := &model.Rating{
		UserID:    req.UserID,
		MovieID:   req.MovieID,
		Title:     req.Title,
		Genres:    listfield.Split(req.Genre),
		Directors: listfield.Split(req.Director),
		Cast:      listfield.Split(req.Cast),
		BaseScore: req.BaseScore,
		Vote:      req.Rating,
	}

	if err := s.ratings.UpsertRating(ctx, rating); err != nil {
		return nil, err
	}

	// Recompute aggregates inline so the badge below sees a snapshot
	// consistent with the vote we just stored. The PrefsWorker also picks
	// up the notify, which makes this recompute idempotent.
	if err := s.prefs.RecomputeUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, req.UserID); err != nil {
			log.Printf("cache: invalidate user error: %v", err)
		}
	}

	result, err := s.engine.CalculateBadge(ctx, model.CandidateMovie{
		MovieID:   rating.MovieID,
		Title:     rating.Title,
		Genres:    rating.Genres,
		Directors: rating.Directors,
		Cast:      rating.Cast,
		BaseScore: rating.BaseScore,
	}, req.UserID, rating.MovieID)
	if err != nil {
		return nil, err
	}

	return &model.RatingResponse{Success: true, Badge: result}, nil
}

// Delete removes a user's rating and refreshes their aggregates.
func (s *RatingService) Delete(ctx context.Context, req model.RatingDeleteRequest) error {
	if err := s.ratings.DeleteRating(ctx, req.UserID, req.MovieID); err != nil {
		return err
	}

	if err := s.prefs.RecomputeUser(ctx, req.UserID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, req.UserID); err != nil {
			log.Printf("cache: invalidate user error: %v", err)
		}
	}

	return nil
}

// History returns a user's full rating history, newest first, with a badge
// recomputed per row. Each row's own vote is excluded from its badge so
// stored ratings never justify their own scores.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *RatingService) History(ctx context.Context, userID string) ([]model.RatingHistoryEntry, []byte, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHistory(ctx, userID)
		if err != nil {
			log.Printf("cache: history get error: %v", err)
		} else if cached != nil {
			return nil, cached, nil
		}
	}

	ratings, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]model.RatingHistoryEntry, 0, len(ratings))
	for _, rt := range ratings {
		result, err := s.engine.CalculateBadge(ctx, model.CandidateMovie{
			MovieID:   rt.MovieID,
			Title:     rt.Title,
			Genres:    rt.Genres,
			Directors: rt.Directors,
			Cast:      rt.Cast,
			BaseScore: rt.BaseScore,
		}, userID, rt.MovieID)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, model.RatingHistoryEntry{Rating: rt, Badge: result})
	}

	if s.cache != nil {
		if err := s.cache.SetHistory(ctx, userID, entries); err != nil {
			log.Printf("cache: history set error: %v", err)
		}
	}

	return entries, nil, nil
}

// Preview computes a read-only badge for an arbitrary candidate without
// persisting anything.
func (s *RatingService) Preview(ctx context.Context, req model.BadgePreviewRequest) (*model.BadgeResult, error) {
	return s.engine.CalculateBadge(ctx, model.CandidateMovie{
		MovieID:   req.MovieID,
		Title:     req.Title,
		Genres:    listfield.Split(req.Genre),
		Directors: listfield.Split(req.Director),
		Cast:      listfield.Split(req.Cast),
		BaseScore: req.BaseScore,
	}, req.UserID, req.ExcludeMovieID)
}
