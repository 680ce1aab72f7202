package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/service"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CatalogHandler handles HTTP requests for browse, search, and detail views.
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *CatalogHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-discovery",
	})
}

// Discover returns a paginated page of popular titles.
// @Summary Browse popular titles
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param kind query string false "Content kind" Enums(movie,tv) default(movie)
// @Success 200 {object} models.ListResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies [get]
func (h *CatalogHandler) Discover(c fiber.Ctx) error {
	params := models.ListParams{
		Page: fiber.Query(c, "page", 1),
		Kind: c.Query("kind", "movie"),
	}

	result, err := h.svc.Discover(c.Context(), params)
	if err != nil {
		slog.Error("discover failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to retrieve titles",
		})
	}
	return c.JSON(result)
}

// Trending returns this week's trending titles.
// @Summary Trending titles
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.ListResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/trending [get]
func (h *CatalogHandler) Trending(c fiber.Ctx) error {
	result, err := h.svc.Trending(c.Context(), fiber.Query(c, "page", 1))
	if err != nil {
		slog.Error("trending failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to retrieve trending titles",
		})
	}
	return c.JSON(result)
}

// Search runs a title search across movies and tv shows.
// @Summary Search titles
// @Tags catalog
// @Produce json
// @Param query query string true "Search query"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/search [get]
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "query parameter is required",
		})
	}

	result, err := h.svc.Search(c.Context(), query, fiber.Query(c, "page", 1))
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "search failed",
		})
	}
	return c.JSON(result)
}

// GetDetail returns one fully enriched title.
// @Summary Get title detail
// @Tags catalog
// @Produce json
// @Param kind path string true "Content kind" Enums(movie,tv)
// @Param id path int true "Title ID"
// @Success 200 {object} models.EnrichedItem
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/{kind}/{id} [get]
func (h *CatalogHandler) GetDetail(c fiber.Ctx) error {
	kind, id, err := pathIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	item, err := h.svc.GetDetail(c.Context(), kind, id)
	if err != nil {
		slog.Error("detail failed", "kind", kind, "id", id, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to retrieve title details",
		})
	}
	return c.JSON(item)
}

// pathIdentity parses the (kind, id) identity pair from the request path.
func pathIdentity(c fiber.Ctx) (models.Kind, int, error) {
	kind := models.Kind(c.Params("kind"))
	if !kind.Valid() {
		return "", 0, models.ErrInvalidKind
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return "", 0, models.ErrInvalidItemID
	}
	return kind, id, nil
}
