package badge

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
)

// fakeSource is an in-memory PreferenceSource for engine tests.
type fakeSource struct {
	ratings     []model.Rating
	genres      map[string]model.PreferenceAggregate
	directors   map[string]model.PreferenceAggregate
	cast        map[string]model.PreferenceAggregate
	movieGenres map[string][]string
	err         error
}

func (f *fakeSource) UserRatings(_ context.Context, _ string) ([]model.Rating, error) {
	return f.ratings, f.err
}

func (f *fakeSource) GenrePreferences(_ context.Context, _ string) (map[string]model.PreferenceAggregate, error) {
	return f.genres, f.err
}

func (f *fakeSource) DirectorPreferences(_ context.Context, _ string) (map[string]model.PreferenceAggregate, error) {
	return f.directors, f.err
}

func (f *fakeSource) CastPreferences(_ context.Context, _ string) (map[string]model.PreferenceAggregate, error) {
	return f.cast, f.err
}

func (f *fakeSource) MovieGenres(_ context.Context, _, movieID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movieGenres[movieID], nil
}

func up() *model.Vote   { v := model.VoteUp; return &v }
func down() *model.Vote { v := model.VoteDown; return &v }

// makeRatings builds n voted ratings in one genre with sequential movie IDs.
func makeRatings(prefix, genre string, n int, vote *model.Vote, baseScore float64) []model.Rating {
	out := make([]model.Rating, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Rating{
			MovieID:   fmt.Sprintf("%s%d", prefix, i),
			Genres:    []string{genre},
			BaseScore: baseScore,
			Vote:      vote,
		})
	}
	return out
}

func TestCalculateBadge_GatedBelowFiveRatedMovies(t *testing.T) {
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 4, up(), 8.0),
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 4}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Action"},
		BaseScore: 9.5,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil badge below evidence gate, got %+v", result)
	}
}

func TestCalculateBadge_GateCountsExcludeCandidate(t *testing.T) {
	// Exactly 5 rated movies, but one of them is the candidate itself:
	// the gate sees only 4 qualifying votes.
	ratings := makeRatings("tt", "Action", 5, up(), 8.0)
	src := &fakeSource{
		ratings: ratings,
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 5}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt0",
		Genres:    []string{"Action"},
		BaseScore: 8.0,
	}, "user1", "tt0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil badge when candidate's own vote is the fifth, got %+v", result)
	}
}

func TestCalculateBadge_GateIgnoresUnvotedRatings(t *testing.T) {
	// Seen-but-not-voted entries carry no evidence.
	ratings := makeRatings("tt", "Action", 4, up(), 8.0)
	ratings = append(ratings, makeRatings("seen", "Action", 3, nil, 7.0)...)
	src := &fakeSource{
		ratings: ratings,
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 4}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Action"},
		BaseScore: 8.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil badge with only 4 voted ratings, got %+v", result)
	}
}

func TestCalculateBadge_NoBaseScore(t *testing.T) {
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 10, up(), 8.0),
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 10}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID: "tt999",
		Genres:  []string{"Action"},
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil badge without base score, got %+v", result)
	}
}

func TestCalculateBadge_ScenarioA_AllThumbsUp(t *testing.T) {
	// 5 Action movies, all up, base ≈ 8.0: ratio 1.0 clamps the genre
	// adjustment to +2.0 and lifts the candidate to a perfect match.
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 5, up(), 8.0),
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 5, AvgBaseScore: 8.0}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Action"},
		BaseScore: 8.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a badge, got nil")
	}

	if result.Adjustments.Genre != 2.0 {
		t.Errorf("genre adjustment = %v, want 2.0", result.Adjustments.Genre)
	}
	if result.AdjustedScore != 10.0 {
		t.Errorf("adjusted score = %v, want 10.0", result.AdjustedScore)
	}
	if result.Badge != model.BadgePerfectMatch {
		t.Errorf("badge = %s, want perfect-match", result.Badge)
	}
	if result.Tier != model.TierExplorer {
		t.Errorf("tier = %s, want Explorer", result.Tier)
	}
	if result.TotalVotes != 5 {
		t.Errorf("total votes = %d, want 5", result.TotalVotes)
	}
	if result.BaseScore != 8.0 {
		t.Errorf("base score = %v, want 8.0", result.BaseScore)
	}
}

func TestCalculateBadge_ScenarioB_AllThumbsDown(t *testing.T) {
	// Same user plus 2 Drama movies voted down. A Drama candidate at ratio
	// 0/2 takes the full -2.0 penalty: 8.0 - 2.0 = 6.0, a great-pick.
	ratings := makeRatings("tt", "Action", 5, up(), 8.0)
	ratings = append(ratings, makeRatings("dd", "Drama", 2, down(), 7.0)...)
	src := &fakeSource{
		ratings: ratings,
		genres: map[string]model.PreferenceAggregate{
			"Action": {ThumbsUp: 5, AvgBaseScore: 8.0},
			"Drama":  {ThumbsDown: 2, AvgBaseScore: 7.0},
		},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Drama"},
		BaseScore: 8.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a badge, got nil")
	}

	if result.Adjustments.Genre != -2.0 {
		t.Errorf("genre adjustment = %v, want -2.0", result.Adjustments.Genre)
	}
	if result.AdjustedScore != 6.0 {
		t.Errorf("adjusted score = %v, want 6.0", result.AdjustedScore)
	}
	if result.Badge != model.BadgeGreatPick {
		t.Errorf("badge = %s, want great-pick", result.Badge)
	}

	// A loved-genre candidate must outscore a hated-genre one.
	loved, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt998",
		Genres:    []string{"Action"},
		BaseScore: 8.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loved.AdjustedScore <= result.AdjustedScore {
		t.Errorf("loved genre score %v should exceed hated genre score %v",
			loved.AdjustedScore, result.AdjustedScore)
	}
}

func TestCalculateBadge_SelfExclusion(t *testing.T) {
	// Candidate tt5 was itself voted up. Its genre sits at 3 up / 3 down
	// including its own vote. Excluding itself: 2/5 = 0.4 → -0.375.
	// Not excluding: 3/6 = 0.5 → 0. The difference is exactly the
	// candidate's own contribution.
	ratings := makeRatings("tt", "Action", 3, up(), 8.0) // tt0..tt2 up; tt2 will flip
	ratings[2].Vote = down()
	ratings = append(ratings,
		model.Rating{MovieID: "tt3", Genres: []string{"Action"}, BaseScore: 6.0, Vote: down()},
		model.Rating{MovieID: "tt4", Genres: []string{"Action"}, BaseScore: 6.0, Vote: down()},
		model.Rating{MovieID: "tt5", Genres: []string{"Action"}, BaseScore: 8.0, Vote: up()},
	)
	src := &fakeSource{
		ratings: ratings,
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 3, ThumbsDown: 3}},
	}
	engine := NewEngine(src)
	candidate := model.CandidateMovie{MovieID: "tt5", Genres: []string{"Action"}, BaseScore: 8.0}

	excluded, err := engine.CalculateBadge(context.Background(), candidate, "user1", "tt5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	included, err := engine.CalculateBadge(context.Background(), candidate, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if excluded.TotalVotes != 5 || included.TotalVotes != 6 {
		t.Errorf("total votes = %d/%d, want 5/6", excluded.TotalVotes, included.TotalVotes)
	}
	if excluded.Adjustments.Genre != -0.4 { // -0.375 rounded
		t.Errorf("excluded genre adjustment = %v, want -0.4", excluded.Adjustments.Genre)
	}
	if included.Adjustments.Genre != 0.0 {
		t.Errorf("included genre adjustment = %v, want 0.0", included.Adjustments.Genre)
	}
	if excluded.Badge != model.BadgeGreatPick {
		t.Errorf("excluded badge = %s, want great-pick", excluded.Badge)
	}
	if included.Badge != model.BadgePerfectMatch {
		t.Errorf("included badge = %s, want perfect-match", included.Badge)
	}
}

func TestCalculateBadge_ExcludeUnknownMovieIsNoop(t *testing.T) {
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 6, up(), 8.0),
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 6}},
	}
	engine := NewEngine(src)
	candidate := model.CandidateMovie{MovieID: "tt999", Genres: []string{"Action"}, BaseScore: 7.0}

	withExclude, err := engine.CalculateBadge(context.Background(), candidate, "user1", "zzz-never-rated")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := engine.CalculateBadge(context.Background(), candidate, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(withExclude, without) {
		t.Errorf("excluding an unrated movie changed the result: %+v vs %+v", withExclude, without)
	}
}

func TestCalculateBadge_CastLimitedToFirstThree(t *testing.T) {
	// A catastrophic aggregate for the fourth-billed actor must not affect
	// the cast adjustment.
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 6, up(), 8.0),
		cast: map[string]model.PreferenceAggregate{
			"Lead One":     {ThumbsUp: 4},
			"Lead Two":     {ThumbsUp: 3},
			"Lead Three":   {ThumbsUp: 2},
			"Ensemble Joe": {ThumbsDown: 10},
		},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Cast:      []string{"Lead One", "Lead Two", "Lead Three", "Ensemble Joe"},
		BaseScore: 7.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a badge, got nil")
	}

	// All three leads score ratio 1.0 → 1.0 each; mean 1.0.
	if result.Adjustments.Cast != 1.0 {
		t.Errorf("cast adjustment = %v, want 1.0 (fourth member ignored)", result.Adjustments.Cast)
	}
}

func TestCalculateBadge_StoredMovieGenresWin(t *testing.T) {
	// When a per-movie genre mapping is stored it overrides the candidate's
	// own genre list.
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 6, up(), 8.0),
		genres: map[string]model.PreferenceAggregate{
			"Action": {ThumbsUp: 6},
			"Horror": {ThumbsDown: 4},
		},
		movieGenres: map[string][]string{"tt999": {"Horror"}},
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Action"},
		BaseScore: 7.0,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a badge, got nil")
	}

	// Horror ratio 0/4 → -2.0; had Action been used it would be +2.0.
	if result.Adjustments.Genre != -2.0 {
		t.Errorf("genre adjustment = %v, want -2.0 from stored mapping", result.Adjustments.Genre)
	}
}

func TestCalculateBadge_MissingFactorDataDegradesToZero(t *testing.T) {
	// No aggregates at all: every factor contributes 0 and the badge falls
	// straight out of the base score.
	src := &fakeSource{
		ratings: makeRatings("tt", "Action", 6, up(), 8.0),
	}
	engine := NewEngine(src)

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Western"},
		Directors: []string{"Nobody Famous"},
		Cast:      []string{"Unknown Actor"},
		BaseScore: 6.5,
	}, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a badge, got nil")
	}

	if result.Adjustments != (model.Adjustments{}) {
		t.Errorf("adjustments = %+v, want all zero", result.Adjustments)
	}
	if result.AdjustedScore != 6.5 {
		t.Errorf("adjusted score = %v, want base score 6.5", result.AdjustedScore)
	}
	if result.Badge != model.BadgeGreatPick {
		t.Errorf("badge = %s, want great-pick at 6.5", result.Badge)
	}
}

func TestCalculateBadge_Idempotent(t *testing.T) {
	ratings := makeRatings("tt", "Action", 20, up(), 7.5)
	src := &fakeSource{
		ratings: ratings,
		genres:  map[string]model.PreferenceAggregate{"Action": {ThumbsUp: 20}},
		directors: map[string]model.PreferenceAggregate{
			"Jane Doe": {ThumbsUp: 3, ThumbsDown: 1},
		},
	}
	engine := NewEngine(src)
	candidate := model.CandidateMovie{
		MovieID:   "tt999",
		Genres:    []string{"Action"},
		Directors: []string{"Jane Doe"},
		BaseScore: 7.2,
	}

	first, err := engine.CalculateBadge(context.Background(), candidate, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.CalculateBadge(context.Background(), candidate, "user1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestCalculateBadge_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	engine := NewEngine(&fakeSource{err: wantErr})

	result, err := engine.CalculateBadge(context.Background(), model.CandidateMovie{
		MovieID:   "tt999",
		BaseScore: 8.0,
	}, "user1", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if result != nil {
		t.Errorf("expected nil result on source error, got %+v", result)
	}
}

func TestClassifyBadge_ThresholdExactness(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Badge
	}{
		{10.0, model.BadgePerfectMatch},
		{8.0, model.BadgePerfectMatch},
		{7.99, model.BadgeGreatPick},
		{6.5, model.BadgeGreatPick},
		{6.49, model.BadgeWorthATry},
		{5.0, model.BadgeWorthATry},
		{4.99, model.BadgeMixedFeelings},
		{3.5, model.BadgeMixedFeelings},
		{3.49, model.BadgeNotYourStyle},
		{0.0, model.BadgeNotYourStyle},
		{-1.0, model.BadgeNotYourStyle},
	}

	for _, tt := range tests {
		if got := classifyBadge(tt.score); got.badge != tt.want {
			t.Errorf("classifyBadge(%v) = %s, want %s", tt.score, got.badge, tt.want)
		}
	}
}
