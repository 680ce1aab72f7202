package service

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/repository"
)

// WatchlistService handles the saved-items list. Every mutation invalidates
// the recommendation cache, since the taste profile is a pure function of
// the saved list and must be recomputed on the next request.
type WatchlistService struct {
	repo  *repository.WatchlistRepository
	redis *redis.Client
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(repo *repository.WatchlistRepository, rdb *redis.Client) *WatchlistService {
	return &WatchlistService{repo: repo, redis: rdb}
}

// Add inserts an item into the watchlist.
func (s *WatchlistService) Add(ctx context.Context, req models.SaveItemRequest) (*models.SavedItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.Insert(req.Item)
	if err != nil {
		return nil, err
	}

	s.invalidateRecommendations(ctx)
	return item, nil
}

// Remove deletes an item from the watchlist.
func (s *WatchlistService) Remove(ctx context.Context, tmdbID int, kind models.Kind) error {
	if tmdbID <= 0 {
		return models.ErrInvalidItemID
	}
	if !kind.Valid() {
		return models.ErrInvalidKind
	}

	if err := s.repo.Delete(tmdbID, kind); err != nil {
		return err
	}

	s.invalidateRecommendations(ctx)
	return nil
}

// ToggleWatched flips an item's watched flag.
func (s *WatchlistService) ToggleWatched(ctx context.Context, tmdbID int, kind models.Kind) (*models.SavedItem, error) {
	if tmdbID <= 0 {
		return nil, models.ErrInvalidItemID
	}
	if !kind.Valid() {
		return nil, models.ErrInvalidKind
	}

	item, err := s.repo.ToggleWatched(tmdbID, kind)
	if err != nil {
		return nil, err
	}

	s.invalidateRecommendations(ctx)
	return item, nil
}

// List returns the full saved list, newest first.
func (s *WatchlistService) List(ctx context.Context) (*models.WatchlistResponse, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return &models.WatchlistResponse{
		Count: len(items),
		Items: items,
	}, nil
}

func (s *WatchlistService) invalidateRecommendations(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, "recommend:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	slog.Debug("recommendation cache invalidated")
}
