package model

import "time"

// Vote is a user's thumb verdict on a movie.
type Vote string

const (
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

// ValidVotes are the allowed vote values for submissions.
var ValidVotes = map[Vote]bool{
	VoteUp:   true,
	VoteDown: true,
}

// Rating represents one user's verdict on one title. Vote is nil when the
// user has marked the movie as seen without voting; such ratings are
// excluded from all preference and tier computations.
type Rating struct {
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Title     string    `json:"title"`
	Genres    []string  `json:"genres"`
	Directors []string  `json:"directors"`
	Cast      []string  `json:"cast"`
	BaseScore float64   `json:"baseScore"`
	Vote      *Vote     `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Voted reports whether the rating carries an up or down vote.
func (r *Rating) Voted() bool {
	return r.Vote != nil
}

// RatingRequest is the API request body for submitting or updating a rating.
// Genre, Director and Cast are comma-joined strings as delivered by the
// upstream metadata APIs; they are split into lists at the service boundary.
type RatingRequest struct {
	UserID    string  `json:"userId"`
	MovieID   string  `json:"movieId"`
	Title     string  `json:"title"`
	Genre     string  `json:"genre,omitempty"`
	Director  string  `json:"director,omitempty"`
	Cast      string  `json:"cast,omitempty"`
	BaseScore float64 `json:"baseScore,omitempty"`
	Rating    *Vote   `json:"rating"`
}

// RatingDeleteRequest is the API request body for removing a rating.
type RatingDeleteRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// RatingResponse is the API response after submitting a rating. Badge is
// null whenever the engine has insufficient evidence; that is an expected
// state, not an error.
type RatingResponse struct {
	Success bool         `json:"success"`
	Badge   *BadgeResult `json:"badge"`
}

// RatingHistoryEntry is one row of a user's rating history, with the badge
// recomputed for that row (excluding the row's own vote from the evidence).
type RatingHistoryEntry struct {
	Rating
	Badge *BadgeResult `json:"badge"`
}

// PreferenceAggregate holds precomputed thumbs-up/down counts and the
// average base score for a single factor value (one genre, one director,
// or one cast member) for one user.
type PreferenceAggregate struct {
	ThumbsUp     int     `json:"thumbsUp"`
	ThumbsDown   int     `json:"thumbsDown"`
	AvgBaseScore float64 `json:"avgBaseScore"`
}

// Total returns the number of votes behind the aggregate.
func (a PreferenceAggregate) Total() int {
	return a.ThumbsUp + a.ThumbsDown
}
