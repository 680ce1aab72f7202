package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/steodhiambo/movie-discovery-app/internal/service"
)

// RecommendationHandler handles HTTP requests for recommendations and the
// derived taste profile.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// GetRecommendations returns the ranked recommendation list.
// @Summary Get recommendations
// @Tags recommendations
// @Produce json
// @Param limit query int false "Maximum ranked items" default(20)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Param category query string false "Category filter" Enums(because_you_watched,genre_match,highly_rated,trending,similar_taste)
// @Success 200 {object} models.RecommendationResponse
// @Failure 502 {object} ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	q := service.RecommendQuery{
		Limit:    fiber.Query(c, "limit", 20),
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "page_size", 0),
		Category: c.Query("category"),
	}

	result, err := h.svc.GetRecommendations(c.Context(), q)
	if err != nil {
		slog.Error("recommendations failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to generate recommendations",
		})
	}
	return c.JSON(result)
}

// GetPreferences returns the derived taste profile. 204 on cold start: with
// an empty watchlist there is no profile to show, and that is not an error.
// @Summary Get taste profile
// @Tags recommendations
// @Produce json
// @Success 200 {object} models.UserPreferences
// @Success 204 "Empty watchlist, no profile yet"
// @Failure 500 {object} ErrorResponse
// @Router /preferences [get]
func (h *RecommendationHandler) GetPreferences(c fiber.Ctx) error {
	prefs, err := h.svc.GetPreferences(c.Context())
	if err != nil {
		slog.Error("preferences failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to derive preferences",
		})
	}
	if prefs == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(prefs)
}
