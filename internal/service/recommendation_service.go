package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/steodhiambo/movie-discovery-app/internal/config"
	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/recommend"
	"github.com/steodhiambo/movie-discovery-app/internal/repository"
)

const (
	poolCacheTTL = 30 * time.Minute
	poolCacheKey = "recommend:pool"
)

// RecommendQuery holds the recommendation listing parameters.
type RecommendQuery struct {
	Limit    int    `query:"limit"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Category string `query:"category"`
}

// Validate sets defaults and validates parameters.
func (q *RecommendQuery) Validate() {
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > q.Limit {
		q.PageSize = q.Limit
	}
}

// RecommendationService orchestrates the recommendation pipeline: assemble
// and enrich a candidate pool, read the saved list, and hand both to the
// pure ranking core. The expensive enriched pool is cached; ranking itself
// is cheap and recomputed per request.
type RecommendationService struct {
	catalog   *CatalogService
	watchlist *repository.WatchlistRepository
	redis     *redis.Client
	params    recommend.Params
	poolPages int
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	catalog *CatalogService,
	watchlist *repository.WatchlistRepository,
	rdb *redis.Client,
	cfg config.RecommendConfig,
) *RecommendationService {
	params := recommend.DefaultParams()
	if cfg.PopularityNorm > 0 {
		params.PopularityNorm = cfg.PopularityNorm
	}
	if cfg.RatingBandOffset > 0 {
		params.RatingBandOffset = cfg.RatingBandOffset
	}
	if cfg.MinScore > 0 {
		params.MinScore = cfg.MinScore
	}
	if cfg.TrendingFloor > 0 {
		params.TrendingFloor = cfg.TrendingFloor
	}

	poolPages := cfg.PoolPages
	if poolPages < 1 {
		poolPages = 3
	}

	return &RecommendationService{
		catalog:   catalog,
		watchlist: watchlist,
		redis:     rdb,
		params:    params,
		poolPages: poolPages,
	}
}

// GetRecommendations returns the ranked, categorized, paginated list for the
// current saved-items state.
func (s *RecommendationService) GetRecommendations(ctx context.Context, q RecommendQuery) (*models.RecommendationResponse, error) {
	q.Validate()

	saved, err := s.watchlist.List()
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	pool, err := s.candidatePool(ctx)
	if err != nil {
		return nil, fmt.Errorf("build candidate pool: %w", err)
	}

	ranked := recommend.Rank(pool, saved, q.Limit, time.Now(), s.params)
	ranked = recommend.FilterByCategory(ranked, q.Category)

	page := recommend.Paginate(ranked, q.Page, q.PageSize)
	return &models.RecommendationResponse{
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalResults: len(ranked),
		Data:         page,
	}, nil
}

// GetPreferences returns the derived taste profile, or nil on cold start.
func (s *RecommendationService) GetPreferences(ctx context.Context) (*models.UserPreferences, error) {
	saved, err := s.watchlist.List()
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return recommend.BuildPreferences(saved, time.Now(), s.params), nil
}

// candidatePool assembles and fully enriches the candidate set: the first
// discover pages of each kind plus the weekly trending feed, deduplicated by
// identity key. The enriched pool is cached since the secondary-provider
// fan-out is by far the most expensive step of the pipeline.
func (s *RecommendationService) candidatePool(ctx context.Context) ([]models.EnrichedItem, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, poolCacheKey).Result(); err == nil {
			var pool []models.EnrichedItem
			if json.Unmarshal([]byte(cached), &pool) == nil {
				slog.Debug("candidate pool cache hit", "size", len(pool))
				return pool, nil
			}
		}
	}

	type key struct {
		id   int
		kind models.Kind
	}
	seen := make(map[key]bool)
	var candidates []models.CatalogItem

	add := func(items []models.CatalogItem) {
		for _, item := range items {
			k := key{item.ID, item.Kind}
			if !seen[k] {
				seen[k] = true
				candidates = append(candidates, item)
			}
		}
	}

	for page := 1; page <= s.poolPages; page++ {
		for _, kind := range []models.Kind{models.KindMovie, models.KindTV} {
			result, err := s.catalog.tmdb.Discover(ctx, kind, page)
			if err != nil {
				return nil, err
			}
			add(result.Items)
		}
	}

	if trending, err := s.catalog.tmdb.Trending(ctx, 1); err == nil {
		add(trending.Items)
	} else {
		slog.Warn("trending fetch failed, pool uses discover only", "error", err)
	}

	pool := s.catalog.EnrichPool(ctx, candidates)

	if s.redis != nil {
		if data, err := json.Marshal(pool); err == nil {
			if err := s.redis.Set(ctx, poolCacheKey, data, poolCacheTTL).Err(); err != nil {
				slog.Error("failed to cache candidate pool", "error", err)
			}
		}
	}

	return pool, nil
}
