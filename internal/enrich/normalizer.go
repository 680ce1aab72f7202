// Package enrich merges heterogeneous provider ratings into a single
// comparable score. Normalization is a pure transformation: a catalog item
// plus an optional raw secondary-provider record in, an enriched item out,
// nothing thrown on malformed data.
package enrich

import (
	"math"
	"strconv"
	"strings"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/omdb"
)

// Fixed provider weights for the aggregated score. Weights of absent sources
// are redistributed, so a lone provider keeps its full score.
const (
	weightTMDB       = 0.25
	weightIMDb       = 0.35
	weightRT         = 0.25
	weightMetacritic = 0.15
)

// Normalize builds an EnrichedItem from a catalog item and an optional raw
// OMDb record. A score of exactly 0 from any provider is treated as "no
// data", not "worst possible".
func Normalize(item models.CatalogItem, raw *omdb.Record) models.EnrichedItem {
	enriched := models.EnrichedItem{
		CatalogItem: item,
		DataSource:  models.SourceTMDBOnly,
		Language:    item.OriginalLanguage,
	}

	ratings := buildRatings(item, raw)
	if ratings != nil {
		enriched.Ratings = ratings
		enriched.AggregatedScore = aggregate(ratings)
	}

	if raw.Found() {
		enriched.DataSource = models.SourceTMDBPlusOMDB
		enriched.Actors = splitList(raw.Actors)
		if d := splitList(raw.Director); len(d) > 0 {
			enriched.Director = d[0]
		}
		if l := splitList(raw.Language); len(l) > 0 {
			enriched.Language = l[0]
		}
	}

	return enriched
}

// buildRatings collects whatever sub-ratings have usable data, each on its
// provider's native scale. Returns nil when no provider reported anything.
func buildRatings(item models.CatalogItem, raw *omdb.Record) *models.ProviderRatings {
	var ratings models.ProviderRatings
	any := false

	if item.VoteAverage > 0 {
		ratings.TMDB = &models.Rating{Score: item.VoteAverage, Votes: item.VoteCount}
		any = true
	}

	if raw.Found() {
		if score, ok := parseScore(raw.IMDbRating); ok {
			ratings.IMDb = &models.Rating{Score: score, Votes: parseVotes(raw.IMDbVotes)}
			any = true
		}
		if score, ok := parseScore(rottenTomatoesValue(raw.Ratings)); ok {
			ratings.RottenTomatoes = &models.Rating{Score: score}
			any = true
		}
		if score, ok := parseScore(raw.Metascore); ok {
			ratings.Metacritic = &models.Rating{Score: score}
			any = true
		}
	}

	if !any {
		return nil
	}
	return &ratings
}

// aggregate computes the 0-10 weighted composite over present sources, with
// the 0-100 scales rescaled and the weights renormalized to sum to 1.
func aggregate(r *models.ProviderRatings) float64 {
	var weighted, total float64

	if r.TMDB != nil {
		weighted += r.TMDB.Score * weightTMDB
		total += weightTMDB
	}
	if r.IMDb != nil {
		weighted += r.IMDb.Score * weightIMDb
		total += weightIMDb
	}
	if r.RottenTomatoes != nil {
		weighted += (r.RottenTomatoes.Score / 10) * weightRT
		total += weightRT
	}
	if r.Metacritic != nil {
		weighted += (r.Metacritic.Score / 10) * weightMetacritic
		total += weightMetacritic
	}

	if total == 0 {
		return 0
	}
	return math.Round(weighted/total*100) / 100
}

// parseScore parses a provider score string defensively. "N/A", empty,
// non-numeric, and zero values all mean absent.
func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	// Handles "94%", "84/100" and plain numerics.
	if i := strings.IndexAny(s, "%/"); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseVotes parses a comma-grouped vote count like "1,234,567".
func parseVotes(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "N/A" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func rottenTomatoesValue(ratings []omdb.SourceRating) string {
	for _, r := range ratings {
		if r.Source == "Rotten Tomatoes" {
			return r.Value
		}
	}
	return ""
}

// splitList splits an OMDb comma-separated field, dropping empties and the
// "N/A" sentinel.
func splitList(s string) []string {
	if s == "" || s == "N/A" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && p != "N/A" {
			out = append(out, p)
		}
	}
	return out
}
