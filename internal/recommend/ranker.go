package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

const defaultLimit = 20

// Thresholds of the category decision tree.
const (
	genreReasonConfidence = 0.7
	highlyRatedThreshold  = 8
	trendingPopularity    = 500
	coldStartConfidence   = 0.8
)

type itemKey struct {
	id   int
	kind models.Kind
}

// Rank orchestrates scoring across the candidate pool and assembles the final
// ranked list. With no saved items it runs in cold-start mode (pure popularity
// ranking); otherwise it builds a taste profile, scores every candidate not
// already saved, drops anything under the minimum-score cutoff, categorizes,
// sorts by score descending, and truncates to limit.
func Rank(candidates []models.EnrichedItem, saved []models.SavedItem, limit int, now time.Time, p Params) []models.Recommendation {
	if limit <= 0 {
		limit = defaultLimit
	}

	if len(saved) == 0 {
		return rankColdStart(candidates, limit, p)
	}
	return rankPersonalized(candidates, saved, limit, now, p)
}

// rankColdStart ignores the taste profile entirely: popularity descending
// with a floor to exclude noise, every result tagged trending. New users get
// usable output instead of an empty list.
func rankColdStart(candidates []models.EnrichedItem, limit int, p Params) []models.Recommendation {
	norm := p.PopularityNorm
	if norm <= 0 {
		norm = DefaultParams().PopularityNorm
	}

	pool := make([]models.EnrichedItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Popularity >= p.TrendingFloor {
			pool = append(pool, c)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Popularity != pool[j].Popularity {
			return pool[i].Popularity > pool[j].Popularity
		}
		return pool[i].ID < pool[j].ID
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}

	out := make([]models.Recommendation, 0, len(pool))
	for _, c := range pool {
		out = append(out, models.Recommendation{
			Item:     c,
			Score:    math.Min(c.Popularity/norm, 1),
			Category: models.CategoryTrending,
			Reasons: []models.RecommendationReason{{
				Kind:       models.ReasonTrending,
				Text:       "Trending now",
				Confidence: coldStartConfidence,
			}},
		})
	}
	return out
}

func rankPersonalized(candidates []models.EnrichedItem, saved []models.SavedItem, limit int, now time.Time, p Params) []models.Recommendation {
	prefs := BuildPreferences(saved, now, p)

	// Never recommend what the user already tracks.
	savedKeys := make(map[itemKey]bool, len(saved))
	for _, s := range saved {
		savedKeys[itemKey{s.ID, s.Kind}] = true
	}

	var out []models.Recommendation
	for _, c := range candidates {
		if savedKeys[itemKey{c.ID, c.Kind}] {
			continue
		}
		score, rs := Score(c, prefs, p)
		if score < p.MinScore {
			continue
		}
		out = append(out, models.Recommendation{
			Item:     c,
			Score:    score,
			Reasons:  rs,
			Category: categorize(c, rs),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Item.Popularity != out[j].Item.Popularity {
			return out[i].Item.Popularity > out[j].Item.Popularity
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// categorize assigns exactly one bucket per scored item. The fallback bucket
// has an always-true condition, so nothing leaves uncategorized.
func categorize(item models.EnrichedItem, reasons []models.RecommendationReason) string {
	for _, r := range reasons {
		if r.Kind == models.ReasonGenre && r.Confidence > genreReasonConfidence {
			return models.CategoryGenreMatch
		}
	}
	if item.BestRating() >= highlyRatedThreshold {
		return models.CategoryHighlyRated
	}
	if item.Popularity > trendingPopularity {
		return models.CategoryTrending
	}
	return models.CategorySimilarTaste
}

// Paginate slices a ranked list without recomputing scores. Page is 1-based.
func Paginate(recs []models.Recommendation, page, pageSize int) []models.Recommendation {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultLimit
	}
	start := (page - 1) * pageSize
	if start >= len(recs) {
		return []models.Recommendation{}
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}

// FilterByCategory returns the ranked subset in the given bucket, preserving
// order. An empty category returns the input unchanged.
func FilterByCategory(recs []models.Recommendation, category string) []models.Recommendation {
	if category == "" {
		return recs
	}
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
