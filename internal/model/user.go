package model

// ProfileResponse is the API response for user profile lookups.
type ProfileResponse struct {
	UserID     string       `json:"userId"`
	Tier       Tier         `json:"tier"`
	TotalVotes int          `json:"totalVotes"`
	TotalSeen  int          `json:"totalSeen"`
	ThumbsUp   int          `json:"thumbsUp"`
	ThumbsDown int          `json:"thumbsDown"`
	TopGenres  []GenreTaste `json:"topGenres"`
}

// GenreTaste is one row of a user's per-genre taste breakdown.
type GenreTaste struct {
	Genre      string  `json:"genre"`
	ThumbsUp   int     `json:"thumbsUp"`
	ThumbsDown int     `json:"thumbsDown"`
	Ratio      float64 `json:"ratio"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalUsers     int            `json:"totalUsers"`
	TotalRatings   int            `json:"totalRatings"`
	TotalVotes     int            `json:"totalVotes"`
	ThumbsUpShare  float64        `json:"thumbsUpShare"`
	ActiveUsers24h int            `json:"activeUsers24h"`
	TopGenres      map[string]int `json:"topGenres"`
}
