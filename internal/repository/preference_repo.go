package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zgkmail/watchornot/watchornot-go/internal/badge"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/pkg/listfield"
)

// maxCastAggregated caps how many leading cast members of each rating feed
// the cast aggregates, mirroring the engine's cast restriction.
const maxCastAggregated = 3

// PreferenceRepo maintains and serves the per-factor preference aggregates
// (thumbs-up/down counts per genre, director and cast member). Aggregates
// are a derived view over the ratings table, recomputed per user whenever
// their ratings change.
type PreferenceRepo struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepo(pool *pgxpool.Pool) *PreferenceRepo {
	return &PreferenceRepo{pool: pool}
}

// AggregatesByKind returns one factor kind's aggregates for a user, keyed
// by factor value.
func (r *PreferenceRepo) AggregatesByKind(ctx context.Context, userID string, kind badge.FactorKind) (map[string]model.PreferenceAggregate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT value, thumbs_up, thumbs_down, avg_base_score
		FROM preference_aggregates
		WHERE user_id = $1 AND kind = $2`,
		userID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggs := make(map[string]model.PreferenceAggregate)
	for rows.Next() {
		var value string
		var agg model.PreferenceAggregate
		if err := rows.Scan(&value, &agg.ThumbsUp, &agg.ThumbsDown, &agg.AvgBaseScore); err != nil {
			return nil, err
		}
		aggs[value] = agg
	}
	return aggs, rows.Err()
}

// RecomputeUser rebuilds all of a user's preference aggregates from their
// rating rows in a single transaction, so readers never observe a
// half-replaced view.
func (r *PreferenceRepo) RecomputeUser(ctx context.Context, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT genre, director, cast_members, COALESCE(base_score, 0), vote
		FROM ratings
		WHERE user_id = $1 AND vote IS NOT NULL`,
		userID)
	if err != nil {
		return err
	}

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		var genre, director, cast, vote string
		if err := rows.Scan(&genre, &director, &cast, &rt.BaseScore, &vote); err != nil {
			rows.Close()
			return err
		}
		rt.Genres = listfield.Split(genre)
		rt.Directors = listfield.Split(director)
		rt.Cast = listfield.Split(cast)
		v := model.Vote(vote)
		rt.Vote = &v
		ratings = append(ratings, rt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	aggregates := ComputeAggregates(ratings)

	_, err = tx.Exec(ctx, `DELETE FROM preference_aggregates WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	for kind, byValue := range aggregates {
		for value, agg := range byValue {
			_, err = tx.Exec(ctx, `
				INSERT INTO preference_aggregates (user_id, kind, value, thumbs_up, thumbs_down, avg_base_score)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				userID, string(kind), value, agg.ThumbsUp, agg.ThumbsDown, agg.AvgBaseScore)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// ComputeAggregates folds a user's voted ratings into per-factor-value
// thumbs-up/down counts and average base scores. Only voted ratings may be
// passed in; cast contributions are limited to each rating's first three
// billed members.
func ComputeAggregates(ratings []model.Rating) map[badge.FactorKind]map[string]model.PreferenceAggregate {
	type sums struct {
		agg       model.PreferenceAggregate
		scoreSum  float64
		scoreColl int
	}

	acc := map[badge.FactorKind]map[string]*sums{
		badge.FactorGenre:    {},
		badge.FactorDirector: {},
		badge.FactorCast:     {},
	}

	add := func(kind badge.FactorKind, value string, rt *model.Rating) {
		s, ok := acc[kind][value]
		if !ok {
			s = &sums{}
			acc[kind][value] = s
		}
		if *rt.Vote == model.VoteUp {
			s.agg.ThumbsUp++
		} else {
			s.agg.ThumbsDown++
		}
		if rt.BaseScore > 0 {
			s.scoreSum += rt.BaseScore
			s.scoreColl++
		}
	}

	for i := range ratings {
		rt := &ratings[i]
		if !rt.Voted() {
			continue
		}
		for _, g := range rt.Genres {
			add(badge.FactorGenre, g, rt)
		}
		for _, d := range rt.Directors {
			add(badge.FactorDirector, d, rt)
		}
		for _, c := range listfield.FirstN(rt.Cast, maxCastAggregated) {
			add(badge.FactorCast, c, rt)
		}
	}

	out := make(map[badge.FactorKind]map[string]model.PreferenceAggregate, len(acc))
	for kind, byValue := range acc {
		out[kind] = make(map[string]model.PreferenceAggregate, len(byValue))
		for value, s := range byValue {
			if s.scoreColl > 0 {
				s.agg.AvgBaseScore = s.scoreSum / float64(s.scoreColl)
			}
			out[kind][value] = s.agg
		}
	}
	return out
}
