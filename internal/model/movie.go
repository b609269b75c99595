package model

// CandidateMovie is the title being scored by the badge engine. Multi-value
// fields are ordered lists; comma-joined upstream strings are split before
// they reach this type.
type CandidateMovie struct {
	MovieID   string   `json:"movieId"`
	Title     string   `json:"title,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Directors []string `json:"directors,omitempty"`
	Cast      []string `json:"cast,omitempty"`
	BaseScore float64  `json:"baseScore"`
}

// BadgePreviewRequest is the API request body for read-only badge scoring.
// The candidate does not need to exist in the user's history; when it does,
// ExcludeMovieID stops its own stored vote from biasing the result.
type BadgePreviewRequest struct {
	UserID         string  `json:"userId"`
	MovieID        string  `json:"movieId"`
	Title          string  `json:"title,omitempty"`
	Genre          string  `json:"genre,omitempty"`
	Director       string  `json:"director,omitempty"`
	Cast           string  `json:"cast,omitempty"`
	BaseScore      float64 `json:"baseScore"`
	ExcludeMovieID string  `json:"excludeMovieId,omitempty"`
}

// BadgePreviewResponse wraps the engine result for the preview endpoint.
type BadgePreviewResponse struct {
	Badge *BadgeResult `json:"badge"`
}
