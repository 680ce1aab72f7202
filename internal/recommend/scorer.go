package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

// People sub-score split: fractional cast overlap carries most of the term,
// a matching director adds a flat bonus.
const (
	castOverlapShare   = 0.7
	directorBonusShare = 0.3
)

// Score computes how well a candidate matches the taste profile. The result
// is in [0,1]: five weighted terms (genre 0.40, rating 0.25, year 0.15,
// popularity 0.10, people 0.10) are always evaluated, contributing 0 when
// they don't apply, so the weights sum to 1 and no renormalization is needed.
// Malformed candidate fields contribute 0 rather than failing the item.
func Score(candidate models.EnrichedItem, prefs *models.UserPreferences, p Params) (float64, []models.RecommendationReason) {
	if prefs == nil {
		return 0, nil
	}

	total := genreScore(candidate, prefs) +
		ratingScore(candidate, prefs) +
		yearScore(candidate, prefs) +
		popularityScore(candidate, p) +
		peopleScore(candidate, prefs)

	return total, reasons(candidate, prefs)
}

// genreScore averages the matching preference weight over the candidate's
// genre ids; a genre with no matching preference counts as 0, and an item
// with no genres contributes nothing.
func genreScore(candidate models.EnrichedItem, prefs *models.UserPreferences) float64 {
	if len(candidate.GenreIDs) == 0 || len(prefs.FavoriteGenres) == 0 {
		return 0
	}

	weights := make(map[int]float64, len(prefs.FavoriteGenres))
	for _, g := range prefs.FavoriteGenres {
		weights[g.GenreID] = g.Weight
	}

	var sum float64
	for _, id := range candidate.GenreIDs {
		sum += weights[id]
	}
	avg := sum / float64(len(candidate.GenreIDs))
	return math.Min(avg, 1) * weightGenre
}

// ratingScore is a hard gate: candidates outside the preferred band get
// exactly 0, candidates inside get their rating scaled by the term weight.
func ratingScore(candidate models.EnrichedItem, prefs *models.UserPreferences) float64 {
	r := candidate.BestRating()
	if r <= 0 || !prefs.PreferredRating.Contains(r) {
		return 0
	}
	return math.Min(r/10, 1) * weightRating
}

// yearScore is binary: full term weight inside the preferred year band.
func yearScore(candidate models.EnrichedItem, prefs *models.UserPreferences) float64 {
	y := ReleaseYear(candidate.ReleaseDate)
	if y == 0 || !prefs.PreferredYears.Contains(float64(y)) {
		return 0
	}
	return weightYear
}

func popularityScore(candidate models.EnrichedItem, p Params) float64 {
	norm := p.PopularityNorm
	if norm <= 0 {
		norm = DefaultParams().PopularityNorm
	}
	return math.Min(candidate.Popularity/norm, 1) * weightPopularity
}

// peopleScore combines fractional cast overlap with a flat director bonus,
// capped at 1 before the term weight applies.
func peopleScore(candidate models.EnrichedItem, prefs *models.UserPreferences) float64 {
	var raw float64

	if len(candidate.Actors) > 0 && len(prefs.ActorPreferences) > 0 {
		preferred := make(map[string]bool, len(prefs.ActorPreferences))
		for _, a := range prefs.ActorPreferences {
			preferred[a] = true
		}
		matched := 0
		for _, a := range candidate.Actors {
			if preferred[strings.ToLower(strings.TrimSpace(a))] {
				matched++
			}
		}
		raw += castOverlapShare * float64(matched) / float64(len(candidate.Actors))
	}

	if candidate.Director != "" {
		dir := strings.ToLower(strings.TrimSpace(candidate.Director))
		for _, d := range prefs.DirectorPreferences {
			if d == dir {
				raw += directorBonusShare
				break
			}
		}
	}

	return math.Min(raw, 1) * weightPeople
}

// reasons produces up to three human-readable justifications, generated
// independently of the score. Each carries its own confidence.
func reasons(candidate models.EnrichedItem, prefs *models.UserPreferences) []models.RecommendationReason {
	var out []models.RecommendationReason

	// Highest-weight matching genre first.
	var best *models.GenreAffinity
	for i := range prefs.FavoriteGenres {
		g := &prefs.FavoriteGenres[i]
		if g.Weight <= 0 {
			continue
		}
		for _, id := range candidate.GenreIDs {
			if id == g.GenreID && (best == nil || g.Weight > best.Weight) {
				best = g
			}
		}
	}
	if best != nil {
		name := best.Name
		if name == "" {
			name = GenreName(best.GenreID)
		}
		text := "Matches your favorite genres"
		if name != "" {
			text = fmt.Sprintf("Because you like %s", name)
		}
		out = append(out, models.RecommendationReason{
			Kind:       models.ReasonGenre,
			Text:       text,
			Confidence: 0.9,
		})
	}

	if r := candidate.BestRating(); r > 0 && r >= prefs.PreferredRating.Min {
		out = append(out, models.RecommendationReason{
			Kind:       models.ReasonHighlyRated,
			Text:       fmt.Sprintf("Highly rated (%.1f/10)", r),
			Confidence: 0.8,
		})
	}

	if hasPeopleOverlap(candidate, prefs) {
		out = append(out, models.RecommendationReason{
			Kind:       models.ReasonPeople,
			Text:       "Features actors or directors you like",
			Confidence: 0.7,
		})
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func hasPeopleOverlap(candidate models.EnrichedItem, prefs *models.UserPreferences) bool {
	preferred := make(map[string]bool, len(prefs.ActorPreferences))
	for _, a := range prefs.ActorPreferences {
		preferred[a] = true
	}
	for _, a := range candidate.Actors {
		if preferred[strings.ToLower(strings.TrimSpace(a))] {
			return true
		}
	}
	if candidate.Director != "" {
		dir := strings.ToLower(strings.TrimSpace(candidate.Director))
		for _, d := range prefs.DirectorPreferences {
			if d == dir {
				return true
			}
		}
	}
	return false
}
