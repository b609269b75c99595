package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/zgkmail/watchornot/watchornot-go/internal/middleware"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/internal/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Submit handles POST /api/ratings
func (h *RatingHandler) Submit(c fiber.Ctx) error {
	var req model.RatingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	movieID, errMsg := middleware.ValidateMovieID(req.MovieID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.MovieID = movieID

	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	if req.Rating != nil && !model.ValidVotes[*req.Rating] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_RATING",
			"Invalid rating. Must be \"up\", \"down\", or null for seen-without-voting")
	}

	baseScore, errMsg := middleware.ValidateBaseScore(req.BaseScore)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.BaseScore = baseScore

	// Sanitize free-text metadata
	req.Title = middleware.ValidateTitle(req.Title)
	req.Genre = middleware.ValidateListField(req.Genre)
	req.Director = middleware.ValidateListField(req.Director)
	req.Cast = middleware.ValidateListField(req.Cast)

	resp, err := h.svc.Submit(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
	}

	// Collectors are nil until InitMetrics runs (unit tests skip it).
	if Metrics.RatingsTotal != nil {
		vote := "none"
		if req.Rating != nil {
			vote = string(*req.Rating)
		}
		Metrics.RatingsTotal.WithLabelValues(vote).Inc()
	}
	if Metrics.BadgesComputedTotal != nil {
		badgeLabel := "none"
		if resp.Badge != nil {
			badgeLabel = string(resp.Badge.Badge)
		}
		Metrics.BadgesComputedTotal.WithLabelValues(badgeLabel).Inc()
	}

	return c.JSON(resp)
}

// Delete handles DELETE /api/ratings
func (h *RatingHandler) Delete(c fiber.Ctx) error {
	var req model.RatingDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	movieID, errMsg := middleware.ValidateMovieID(req.MovieID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.MovieID = movieID

	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	if err := h.svc.Delete(c.Context(), req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Rating not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete rating")
	}

	return c.JSON(fiber.Map{"success": true})
}

// History handles GET /api/ratings/:userId
func (h *RatingHandler) History(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, cached, err := h.svc.History(c.Context(), userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch rating history")
	}

	if cached != nil {
		if Metrics.CacheHits != nil {
			Metrics.CacheHits.Inc()
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}
	if Metrics.CacheMisses != nil {
		Metrics.CacheMisses.Inc()
	}
	if entries == nil {
		entries = []model.RatingHistoryEntry{}
	}
	return c.JSON(entries)
}
