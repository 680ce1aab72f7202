package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/service"
)

// WatchlistHandler handles HTTP requests for the watchlist.
type WatchlistHandler struct {
	svc *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// List returns the full watchlist.
// @Summary List watchlist
// @Tags watchlist
// @Produce json
// @Success 200 {object} models.WatchlistResponse
// @Failure 500 {object} ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c fiber.Ctx) error {
	result, err := h.svc.List(c.Context())
	if err != nil {
		slog.Error("failed to list watchlist", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve watchlist",
		})
	}
	return c.JSON(result)
}

// Add saves an item to the watchlist.
// @Summary Add to watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Param item body models.SaveItemRequest true "Item to save"
// @Success 201 {object} models.SavedItem
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c fiber.Ctx) error {
	var req models.SaveItemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	item, err := h.svc.Add(c.Context(), req)
	if err != nil {
		return h.mapError(c, err, "failed to add watchlist item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Remove deletes an item from the watchlist.
// @Summary Remove from watchlist
// @Tags watchlist
// @Produce json
// @Param kind path string true "Content kind" Enums(movie,tv)
// @Param id path int true "Title ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{kind}/{id} [delete]
func (h *WatchlistHandler) Remove(c fiber.Ctx) error {
	kind, id, err := pathIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	if err := h.svc.Remove(c.Context(), id, kind); err != nil {
		return h.mapError(c, err, "failed to remove watchlist item")
	}
	return c.JSON(fiber.Map{"message": "removed"})
}

// ToggleWatched flips an item's watched flag.
// @Summary Toggle watched flag
// @Tags watchlist
// @Produce json
// @Param kind path string true "Content kind" Enums(movie,tv)
// @Param id path int true "Title ID"
// @Success 200 {object} models.SavedItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{kind}/{id}/watched [patch]
func (h *WatchlistHandler) ToggleWatched(c fiber.Ctx) error {
	kind, id, err := pathIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	item, err := h.svc.ToggleWatched(c.Context(), id, kind)
	if err != nil {
		return h.mapError(c, err, "failed to toggle watched flag")
	}
	return c.JSON(item)
}

func (h *WatchlistHandler) mapError(c fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, models.ErrInvalidItemID), errors.Is(err, models.ErrInvalidKind):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrAlreadySaved):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotInWatchlist):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	default:
		slog.Error(logMsg, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: logMsg})
	}
}
