package recommend

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

// BuildPreferences derives a taste profile from the saved-items list. It
// returns nil on an empty list: the cold-start signal, not an error. The
// function is idempotent and side-effect-free: safe to call on every
// saved-list mutation. now supplies the current calendar year so callers (and
// tests) control the clock.
func BuildPreferences(saved []models.SavedItem, now time.Time, p Params) *models.UserPreferences {
	if len(saved) == 0 {
		return nil
	}

	prefs := &models.UserPreferences{
		TotalWatched: len(saved),
	}

	prefs.FavoriteGenres = favoriteGenres(saved)
	prefs.AverageRating = averageRating(saved)
	prefs.PreferredRating = models.Band{
		Min: math.Max(0, prefs.AverageRating-p.RatingBandOffset),
		Max: 10,
	}
	prefs.PreferredYears = preferredYears(saved, now)
	prefs.PreferredLanguages = topFrequent(saved, maxLanguages, func(it models.SavedItem) []string {
		lang := it.Language
		if lang == "" {
			lang = it.OriginalLanguage
		}
		if lang == "" {
			return nil
		}
		return []string{lang}
	})
	prefs.ActorPreferences = topFrequent(saved, maxActors, func(it models.SavedItem) []string {
		if len(it.Actors) > actorsPerSavedItem {
			return it.Actors[:actorsPerSavedItem]
		}
		return it.Actors
	})
	prefs.DirectorPreferences = topFrequent(saved, maxDirectors, func(it models.SavedItem) []string {
		if it.Director == "" {
			return nil
		}
		return []string{it.Director}
	})

	return prefs
}

// favoriteGenres weighs each genre by how often it appears and how well the
// user rated the items carrying it: weight = share * quality, with share =
// occurrences/total and quality = avg rating of those items / 10.
func favoriteGenres(saved []models.SavedItem) []models.GenreAffinity {
	counts := make(map[int]int)
	ratingSums := make(map[int]float64)
	for _, it := range saved {
		for _, g := range it.GenreIDs {
			counts[g]++
			ratingSums[g] += it.BestRating()
		}
	}

	genres := make([]models.GenreAffinity, 0, len(counts))
	total := float64(len(saved))
	for id, count := range counts {
		avg := ratingSums[id] / float64(count)
		genres = append(genres, models.GenreAffinity{
			GenreID: id,
			Name:    GenreName(id),
			Weight:  (float64(count) / total) * (avg / 10),
		})
	}

	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Weight != genres[j].Weight {
			return genres[i].Weight > genres[j].Weight
		}
		return genres[i].GenreID < genres[j].GenreID
	})
	if len(genres) > maxFavoriteGenres {
		genres = genres[:maxFavoriteGenres]
	}
	return genres
}

// averageRating is the population mean over saved items, excluding items with
// no usable rating.
func averageRating(saved []models.SavedItem) float64 {
	var sum float64
	var n int
	for _, it := range saved {
		if r := it.BestRating(); r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// preferredYears bands from the earliest of the most-recent 70% of distinct
// saved release years up to the current year: recent-skewed without fully
// discarding catalog depth.
func preferredYears(saved []models.SavedItem, now time.Time) models.Band {
	seen := make(map[int]bool)
	var years []int
	for _, it := range saved {
		if y := ReleaseYear(it.ReleaseDate); y > 0 && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}

	band := models.Band{Min: 0, Max: float64(now.Year())}
	if len(years) == 0 {
		return band
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	keep := int(math.Ceil(float64(len(years)) * recentYearShare))
	band.Min = float64(years[keep-1])
	return band
}

// topFrequent counts case-normalized values extracted from each saved item and
// returns the n most frequent, ties broken alphabetically.
func topFrequent(saved []models.SavedItem, n int, extract func(models.SavedItem) []string) []string {
	counts := make(map[string]int)
	for _, it := range saved {
		for _, v := range extract(it) {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				counts[v]++
			}
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// ReleaseYear parses the year out of an ISO release date, returning 0 when the
// date is empty or malformed.
func ReleaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(releaseDate[:4])
	if err != nil || y <= 0 {
		return 0
	}
	return y
}
