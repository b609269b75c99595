package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/pkg/listfield"
)

type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// UpsertRating inserts or updates a user's rating of one movie atomically.
// It ensures the user row exists, replaces the stored per-movie genre
// mapping, and notifies the preference worker so aggregates get refreshed.
// A nil vote records the movie as seen without a verdict.
func (r *RatingRepo) UpsertRating(ctx context.Context, rating *model.Rating) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Ensure user exists (auto-create with defaults if new)
	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET last_active = NOW()`,
		rating.UserID)
	if err != nil {
		return err
	}

	var vote *string
	if rating.Vote != nil {
		v := string(*rating.Vote)
		vote = &v
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ratings (user_id, movie_id, title, genre, director, cast_members, base_score, vote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET title = EXCLUDED.title, genre = EXCLUDED.genre,
		    director = EXCLUDED.director, cast_members = EXCLUDED.cast_members,
		    base_score = EXCLUDED.base_score, vote = EXCLUDED.vote,
		    updated_at = NOW()`,
		rating.UserID, rating.MovieID, rating.Title,
		listfield.Join(rating.Genres), listfield.Join(rating.Directors),
		listfield.Join(rating.Cast), rating.BaseScore, vote)
	if err != nil {
		return err
	}

	// Replace the per-movie genre mapping; it is authoritative over the
	// comma-joined genre string when the badge engine resolves genres.
	_, err = tx.Exec(ctx, `
		DELETE FROM movie_genres WHERE user_id = $1 AND movie_id = $2`,
		rating.UserID, rating.MovieID)
	if err != nil {
		return err
	}
	for _, g := range rating.Genres {
		_, err = tx.Exec(ctx, `
			INSERT INTO movie_genres (user_id, movie_id, genre)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, movie_id, genre) DO NOTHING`,
			rating.UserID, rating.MovieID, g)
		if err != nil {
			return err
		}
	}

	// Wake the preference worker to recompute this user's aggregates
	_, err = tx.Exec(ctx, `SELECT pg_notify('rating_changes', $1)`, rating.UserID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteRating removes a user's rating and its genre mapping atomically.
// Returns pgx.ErrNoRows if the rating doesn't exist.
func (r *RatingRepo) DeleteRating(ctx context.Context, userID, movieID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var existing string
	err = tx.QueryRow(ctx, `
		SELECT movie_id FROM ratings WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID).Scan(&existing)
	if err != nil {
		return err // pgx.ErrNoRows when the rating was never stored
	}

	_, err = tx.Exec(ctx, `DELETE FROM ratings WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM movie_genres WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('rating_changes', $1)`, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByUser returns all of a user's ratings, newest first, with the
// comma-joined metadata fields parsed into lists.
func (r *RatingRepo) ListByUser(ctx context.Context, userID string) ([]model.Rating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, movie_id, title, genre, director, cast_members,
		       COALESCE(base_score, 0), vote, created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		var genre, director, cast string
		var vote *string
		err := rows.Scan(
			&rt.UserID, &rt.MovieID, &rt.Title, &genre, &director, &cast,
			&rt.BaseScore, &vote, &rt.CreatedAt, &rt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rt.Genres = listfield.Split(genre)
		rt.Directors = listfield.Split(director)
		rt.Cast = listfield.Split(cast)
		if vote != nil {
			v := model.Vote(*vote)
			rt.Vote = &v
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// MovieGenres returns the stored genre mapping for one of the user's
// movies. An empty result means no mapping is stored; callers fall back to
// the candidate's own genre list.
func (r *RatingRepo) MovieGenres(ctx context.Context, userID, movieID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT genre FROM movie_genres
		WHERE user_id = $1 AND movie_id = $2
		ORDER BY genre`,
		userID, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}
