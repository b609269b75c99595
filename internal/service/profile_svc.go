package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/zgkmail/watchornot/watchornot-go/internal/badge"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/internal/repository"
)

// topGenreLimit caps the genre breakdown returned in a profile.
const topGenreLimit = 5

type ProfileService struct {
	users *repository.UserRepo
	cache *CacheService
}

func NewProfileService(users *repository.UserRepo, cache *CacheService) *ProfileService {
	return &ProfileService{users: users, cache: cache}
}

// Lookup returns a user's profile: engagement tier, vote tallies and genre
// taste breakdown. Uses cache-aside: check Redis first, fall back to DB,
// then populate cache.
func (s *ProfileService) Lookup(ctx context.Context, userID string) (*model.ProfileResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProfile(ctx, userID)
		if err != nil {
			log.Printf("cache: profile get error: %v", err)
		} else if cached != nil {
			var resp model.ProfileResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	counts, err := s.users.CountVotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	topGenres, err := s.users.TopGenres(ctx, userID, topGenreLimit)
	if err != nil {
		return nil, err
	}
	if topGenres == nil {
		topGenres = []model.GenreTaste{}
	}

	totalVotes := counts.ThumbsUp + counts.ThumbsDown
	resp := &model.ProfileResponse{
		UserID:     userID,
		Tier:       badge.ClassifyTier(totalVotes),
		TotalVotes: totalVotes,
		TotalSeen:  counts.TotalSeen,
		ThumbsUp:   counts.ThumbsUp,
		ThumbsDown: counts.ThumbsDown,
		TopGenres:  topGenres,
	}

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, userID, resp); err != nil {
			log.Printf("cache: profile set error: %v", err)
		}
	}

	return resp, nil
}

// GetStats returns aggregate platform statistics.
func (s *ProfileService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.users.GetStats(ctx)
}
