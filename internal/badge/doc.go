// Package badge turns a user's accumulated thumbs-up/thumbs-down history
// into a personalized recommendation badge for a single candidate title.
//
// The engine is a pure, read-only computation: it pulls a snapshot of the
// user's rating history and per-factor preference aggregates from an
// injected PreferenceSource, adjusts the candidate's base critic score by
// genre, director and cast affinity, and classifies the result into a
// discrete badge plus an engagement tier. It holds no mutable state and is
// safe to call concurrently.
//
// A nil result with a nil error means "no badge available" (fewer than
// five qualifying rated movies, or no base score to adjust). Callers must
// treat that as a valid state, not a failure.
package badge
