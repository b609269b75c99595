package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// VoteCounts holds a user's rating tallies.
type VoteCounts struct {
	TotalSeen  int
	ThumbsUp   int
	ThumbsDown int
}

// CountVotes returns a user's rating tallies in one query.
func (r *UserRepo) CountVotes(ctx context.Context, userID string) (VoteCounts, error) {
	var c VoteCounts
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE vote = 'up'),
		       COUNT(*) FILTER (WHERE vote = 'down')
		FROM ratings
		WHERE user_id = $1`,
		userID).Scan(&c.TotalSeen, &c.ThumbsUp, &c.ThumbsDown)
	return c, err
}

// TopGenres returns the user's most thumbed-up genres with their ratios.
func (r *UserRepo) TopGenres(ctx context.Context, userID string, limit int) ([]model.GenreTaste, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT value, thumbs_up, thumbs_down
		FROM preference_aggregates
		WHERE user_id = $1 AND kind = 'genre'
		ORDER BY thumbs_up DESC, value
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tastes []model.GenreTaste
	for rows.Next() {
		var t model.GenreTaste
		if err := rows.Scan(&t.Genre, &t.ThumbsUp, &t.ThumbsDown); err != nil {
			return nil, err
		}
		if total := t.ThumbsUp + t.ThumbsDown; total > 0 {
			t.Ratio = float64(t.ThumbsUp) / float64(total)
		}
		tastes = append(tastes, t)
	}
	return tastes, rows.Err()
}

// GetStats returns aggregate statistics from all tables.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM ratings) AS total_ratings,
			(SELECT COUNT(*) FROM ratings WHERE vote IS NOT NULL) AS total_votes,
			(SELECT COUNT(*) FROM ratings WHERE vote = 'up') AS thumbs_up,
			(SELECT COUNT(*) FROM users WHERE last_active > NOW() - INTERVAL '24 hours') AS active_users_24h`

	var stats model.StatsResponse
	var thumbsUp int
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalRatings, &stats.TotalVotes,
		&thumbsUp, &stats.ActiveUsers24h,
	)
	if err != nil {
		return nil, err
	}
	if stats.TotalVotes > 0 {
		stats.ThumbsUpShare = float64(thumbsUp) / float64(stats.TotalVotes)
	}

	genreQuery := `
		SELECT value, SUM(thumbs_up + thumbs_down) AS total
		FROM preference_aggregates
		WHERE kind = 'genre'
		GROUP BY value
		ORDER BY total DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, genreQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopGenres = make(map[string]int)
	for rows.Next() {
		var genre string
		var count int
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, err
		}
		stats.TopGenres[genre] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
