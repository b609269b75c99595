package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zgkmail/watchornot/watchornot-go/internal/middleware"
	"github.com/zgkmail/watchornot/watchornot-go/internal/model"
	"github.com/zgkmail/watchornot/watchornot-go/internal/service"
)

type BadgeHandler struct {
	svc *service.RatingService
}

func NewBadgeHandler(svc *service.RatingService) *BadgeHandler {
	return &BadgeHandler{svc: svc}
}

// Preview handles POST /api/badge/preview. A null badge in the response is
// the expected result for users below the evidence gate, not an error.
func (h *BadgeHandler) Preview(c fiber.Ctx) error {
	var req model.BadgePreviewRequest
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

	if req.ExcludeMovieID != "" {
		excludeID, errMsg := middleware.ValidateMovieID(req.ExcludeMovieID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.ExcludeMovieID = excludeID
	}

	baseScore, errMsg := middleware.ValidateBaseScore(req.BaseScore)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.BaseScore = baseScore

	req.Genre = middleware.ValidateListField(req.Genre)
	req.Director = middleware.ValidateListField(req.Director)
	req.Cast = middleware.ValidateListField(req.Cast)

	result, err := h.svc.Preview(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to calculate badge")
	}

	return c.JSON(model.BadgePreviewResponse{Badge: result})
}
