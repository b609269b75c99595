package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxMovieIDLen   = 20  // ratings.movie_id VARCHAR(20)
	MaxUserIDLen    = 64  // users.user_id VARCHAR(64)
	MaxTitleLen     = 256 // ratings.title VARCHAR(256)
	MaxListFieldLen = 512 // ratings.genre / director / cast_members VARCHAR(512)
	MaxBaseScore    = 10.0
)

var (
	// movieIDRe matches IMDb IDs (tt0111161) and bare TMDB numeric IDs.
	movieIDRe = regexp.MustCompile(`^(tt\d{6,9}|\d{1,10})$`)
	// userIDRe matches user IDs: hex SHA256 hashes (64 chars) or shorter hashed IDs.
	userIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateMovieID checks that a movie ID is well-formed and within DB limits.
func ValidateMovieID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "movieId is required"
	}
	if len(id) > MaxMovieIDLen {
		return "", "movieId must be at most 20 characters"
	}
	if !movieIDRe.MatchString(id) {
		return "", "movieId must be an IMDb id (tt...) or a numeric TMDB id"
	}
	return id, ""
}

// ValidateUserID checks that a user ID is a valid hex hash.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateTitle trims and truncates a title to DB limits.
func ValidateTitle(title string) string {
	title = strings.TrimSpace(title)
	if len(title) > MaxTitleLen {
		title = title[:MaxTitleLen]
	}
	return title
}

// ValidateListField trims and truncates a comma-joined metadata field
// (genre, director, cast) to DB limits.
func ValidateListField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > MaxListFieldLen {
		s = s[:MaxListFieldLen]
	}
	return s
}

// ValidateBaseScore checks the critic score is inside the 0-10 scale.
// Zero is allowed and means "no score available".
func ValidateBaseScore(score float64) (float64, string) {
	if score < 0 || score > MaxBaseScore {
		return 0, "baseScore must be between 0 and 10"
	}
	return score, ""
}
