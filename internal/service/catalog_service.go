package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/steodhiambo/movie-discovery-app/internal/enrich"
	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/omdb"
	"github.com/steodhiambo/movie-discovery-app/internal/recommend"
	"github.com/steodhiambo/movie-discovery-app/internal/tmdb"
)

const (
	listCacheTTL   = 5 * time.Minute
	detailCacheTTL = 30 * time.Minute
)

// CatalogService handles browse, search, trending, and detail views over the
// two upstream providers. List views carry primary-only enrichment; the
// detail view (and the recommendation pool) get the full secondary lookup.
type CatalogService struct {
	tmdb          *tmdb.Client
	omdb          *omdb.Client
	redis         *redis.Client
	enrichWorkers int
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tmdbClient *tmdb.Client, omdbClient *omdb.Client, rdb *redis.Client, enrichWorkers int) *CatalogService {
	if enrichWorkers <= 0 {
		enrichWorkers = 5
	}
	return &CatalogService{
		tmdb:          tmdbClient,
		omdb:          omdbClient,
		redis:         rdb,
		enrichWorkers: enrichWorkers,
	}
}

// Discover returns a page of popular titles for one content kind.
func (s *CatalogService) Discover(ctx context.Context, params models.ListParams) (*models.ListResponse, error) {
	params.Validate()

	cacheKey := fmt.Sprintf("catalog:discover:%s:%d", params.Kind, params.Page)
	if resp, ok := s.cachedList(ctx, cacheKey); ok {
		return resp, nil
	}

	page, err := s.tmdb.Discover(ctx, models.Kind(params.Kind), params.Page)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", params.Kind, err)
	}

	resp := s.toListResponse(page)
	s.cacheList(ctx, cacheKey, resp, listCacheTTL)
	return resp, nil
}

// Trending returns a page of this week's trending titles, both kinds mixed.
func (s *CatalogService) Trending(ctx context.Context, page int) (*models.ListResponse, error) {
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("catalog:trending:%d", page)
	if resp, ok := s.cachedList(ctx, cacheKey); ok {
		return resp, nil
	}

	result, err := s.tmdb.Trending(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}

	resp := s.toListResponse(result)
	s.cacheList(ctx, cacheKey, resp, listCacheTTL)
	return resp, nil
}

// Search runs a multi search over both content kinds. Search results are not
// cached: the query space is too sparse for the hit rate to pay for the keys.
func (s *CatalogService) Search(ctx context.Context, query string, page int) (*models.ListResponse, error) {
	if page < 1 {
		page = 1
	}

	result, err := s.tmdb.Search(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return s.toListResponse(result), nil
}

// GetDetail returns one fully enriched item: TMDB detail with credits plus
// the OMDb ratings lookup. A failed secondary lookup degrades to
// primary-only data, it never fails the request.
func (s *CatalogService) GetDetail(ctx context.Context, kind models.Kind, id int) (*models.EnrichedItem, error) {
	cacheKey := fmt.Sprintf("catalog:detail:%s:%d", kind, id)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var item models.EnrichedItem
			if json.Unmarshal([]byte(cached), &item) == nil {
				slog.Debug("cache hit", "key", cacheKey)
				return &item, nil
			}
		}
	}

	detail, err := s.tmdb.GetDetail(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("get detail %s/%d: %w", kind, id, err)
	}

	item := s.enrichOne(ctx, detail)

	if data, err := json.Marshal(item); err == nil {
		s.setCache(ctx, cacheKey, data, detailCacheTTL)
	}
	return &item, nil
}

// EnrichPool fully enriches a candidate pool with bounded parallelism. Every
// input item yields an output item: per-item upstream failures degrade to
// primary-only enrichment instead of dropping the candidate.
func (s *CatalogService) EnrichPool(ctx context.Context, items []models.CatalogItem) []models.EnrichedItem {
	out := make([]models.EnrichedItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichWorkers)
	for i, item := range items {
		g.Go(func() error {
			detail, err := s.tmdb.GetDetail(gctx, item.Kind, item.ID)
			if err != nil {
				slog.Warn("detail fetch failed, using list data", "kind", item.Kind, "id", item.ID, "error", err)
				out[i] = enrich.Normalize(item, nil)
				return nil
			}
			out[i] = s.enrichOne(gctx, detail)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// enrichOne runs the secondary lookup and normalization for one detailed
// item, filling people metadata from the primary credits when the secondary
// record has none.
func (s *CatalogService) enrichOne(ctx context.Context, detail *tmdb.Detail) models.EnrichedItem {
	raw := s.lookupSecondary(ctx, detail.Item)
	item := enrich.Normalize(detail.Item, raw)

	if len(item.Actors) == 0 && len(detail.Actors) > 0 {
		actors := detail.Actors
		if len(actors) > 10 {
			actors = actors[:10]
		}
		item.Actors = actors
	}
	if item.Director == "" {
		item.Director = detail.Director
	}
	return item
}

// lookupSecondary tries the OMDb record by IMDb ID first, then by title and
// year. Misses and errors both return nil: the caller falls back to
// primary-only data.
func (s *CatalogService) lookupSecondary(ctx context.Context, item models.CatalogItem) *omdb.Record {
	if s.omdb == nil {
		return nil
	}

	raw, err := s.omdb.LookupByID(ctx, item.IMDbID)
	if err != nil {
		slog.Warn("OMDb lookup failed", "imdb_id", item.IMDbID, "error", err)
		return nil
	}
	if raw != nil {
		return raw
	}

	raw, err = s.omdb.LookupByTitle(ctx, item.Title, recommend.ReleaseYear(item.ReleaseDate), item.Kind)
	if err != nil {
		slog.Warn("OMDb title lookup failed", "title", item.Title, "error", err)
		return nil
	}
	return raw
}

func (s *CatalogService) toListResponse(page *tmdb.Page) *models.ListResponse {
	data := make([]models.EnrichedItem, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, enrich.Normalize(item, nil))
	}
	return &models.ListResponse{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Data:         data,
	}
}

// ---- Redis helpers ----

func (s *CatalogService) cachedList(ctx context.Context, key string) (*models.ListResponse, bool) {
	if s.redis == nil {
		return nil, false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var resp models.ListResponse
	if json.Unmarshal([]byte(cached), &resp) != nil {
		return nil, false
	}
	slog.Debug("cache hit", "key", key)
	return &resp, true
}

func (s *CatalogService) cacheList(ctx context.Context, key string, resp *models.ListResponse, ttl time.Duration) {
	if data, err := json.Marshal(resp); err == nil {
		s.setCache(ctx, key, data, ttl)
	}
}

func (s *CatalogService) setCache(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
