package recommend

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

var testNow = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func savedMovie(id int, genres []int, rating float64, year int) models.SavedItem {
	return models.SavedItem{
		EnrichedItem: models.EnrichedItem{
			CatalogItem: models.CatalogItem{
				ID:          id,
				Kind:        models.KindMovie,
				GenreIDs:    genres,
				ReleaseDate: fmt.Sprintf("%d-06-15", year),
			},
			AggregatedScore: rating,
		},
	}
}

func TestBuildPreferences_EmptyListIsColdStart(t *testing.T) {
	if got := BuildPreferences(nil, testNow, DefaultParams()); got != nil {
		t.Errorf("BuildPreferences(nil) = %+v, want nil", got)
	}
	if got := BuildPreferences([]models.SavedItem{}, testNow, DefaultParams()); got != nil {
		t.Errorf("BuildPreferences(empty) = %+v, want nil", got)
	}
}

func TestBuildPreferences_SingleItemProfile(t *testing.T) {
	saved := []models.SavedItem{savedMovie(1, []int{28}, 9.0, 2020)}

	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if prefs == nil {
		t.Fatal("expected non-nil preferences")
	}

	if prefs.TotalWatched != 1 {
		t.Errorf("TotalWatched = %d, want 1", prefs.TotalWatched)
	}
	if len(prefs.FavoriteGenres) != 1 {
		t.Fatalf("FavoriteGenres = %v, want one entry", prefs.FavoriteGenres)
	}
	top := prefs.FavoriteGenres[0]
	if top.GenreID != 28 || top.Name != "Action" {
		t.Errorf("top genre = %+v, want id 28 (Action)", top)
	}
	// weight = (1/1) * (9.0/10)
	if math.Abs(top.Weight-0.9) > 1e-9 {
		t.Errorf("top genre weight = %v, want 0.9", top.Weight)
	}
	if math.Abs(prefs.PreferredRating.Min-7.5) > 1e-9 || prefs.PreferredRating.Max != 10 {
		t.Errorf("PreferredRating = %+v, want {7.5 10}", prefs.PreferredRating)
	}
	if prefs.PreferredYears.Min != 2020 || prefs.PreferredYears.Max != 2023 {
		t.Errorf("PreferredYears = %+v, want {2020 2023}", prefs.PreferredYears)
	}
}

func TestBuildPreferences_GenreWeightRewardsFrequencyAndQuality(t *testing.T) {
	saved := []models.SavedItem{
		savedMovie(1, []int{28, 35}, 8.0, 2020),
		savedMovie(2, []int{28}, 9.0, 2021),
		savedMovie(3, []int{18}, 6.0, 2019),
		savedMovie(4, []int{28}, 8.5, 2022),
	}

	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if prefs.FavoriteGenres[0].GenreID != 28 {
		t.Fatalf("top genre = %d, want 28", prefs.FavoriteGenres[0].GenreID)
	}
	// weight = (3/4) * ((8.0+9.0+8.5)/3/10)
	want := 0.75 * (25.5 / 3 / 10)
	if math.Abs(prefs.FavoriteGenres[0].Weight-want) > 1e-9 {
		t.Errorf("weight = %v, want %v", prefs.FavoriteGenres[0].Weight, want)
	}
}

func TestBuildPreferences_TopFiveGenresRetained(t *testing.T) {
	saved := []models.SavedItem{
		savedMovie(1, []int{28, 35, 18, 80, 27, 14, 12}, 8.0, 2020),
	}
	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if len(prefs.FavoriteGenres) != 5 {
		t.Errorf("len(FavoriteGenres) = %d, want 5", len(prefs.FavoriteGenres))
	}
}

func TestBuildPreferences_RatingBandExcludesUnrated(t *testing.T) {
	saved := []models.SavedItem{
		savedMovie(1, []int{28}, 8.0, 2020),
		savedMovie(2, []int{28}, 0, 2021), // unrated, excluded from the mean
		savedMovie(3, []int{28}, 9.0, 2022),
	}

	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if math.Abs(prefs.AverageRating-8.5) > 1e-9 {
		t.Errorf("AverageRating = %v, want 8.5", prefs.AverageRating)
	}
	if math.Abs(prefs.PreferredRating.Min-7.0) > 1e-9 {
		t.Errorf("PreferredRating.Min = %v, want 7.0", prefs.PreferredRating.Min)
	}
}

func TestBuildPreferences_RatingBandFloorsAtZero(t *testing.T) {
	saved := []models.SavedItem{savedMovie(1, []int{28}, 1.0, 2020)}
	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if prefs.PreferredRating.Min != 0 {
		t.Errorf("PreferredRating.Min = %v, want 0", prefs.PreferredRating.Min)
	}
}

func TestBuildPreferences_YearBandUsesRecentShare(t *testing.T) {
	saved := []models.SavedItem{
		savedMovie(1, []int{28}, 8, 2010),
		savedMovie(2, []int{28}, 8, 2012),
		savedMovie(3, []int{28}, 8, 2014),
		savedMovie(4, []int{28}, 8, 2016),
		savedMovie(5, []int{28}, 8, 2018),
	}

	prefs := BuildPreferences(saved, testNow, DefaultParams())
	// ceil(5*0.7) = 4 most recent distinct years: 2018, 2016, 2014, 2012.
	if prefs.PreferredYears.Min != 2012 {
		t.Errorf("PreferredYears.Min = %v, want 2012", prefs.PreferredYears.Min)
	}
	if prefs.PreferredYears.Max != float64(testNow.Year()) {
		t.Errorf("PreferredYears.Max = %v, want %d", prefs.PreferredYears.Max, testNow.Year())
	}
}

func TestBuildPreferences_MalformedDatesIgnored(t *testing.T) {
	saved := []models.SavedItem{savedMovie(1, []int{28}, 8, 2020)}
	saved[0].ReleaseDate = ""
	saved = append(saved, savedMovie(2, []int{28}, 8, 2021))
	saved[1].ReleaseDate = "soon"

	prefs := BuildPreferences(saved, testNow, DefaultParams())
	if prefs.PreferredYears.Min != 0 || prefs.PreferredYears.Max != float64(testNow.Year()) {
		t.Errorf("PreferredYears = %+v, want open-ended band", prefs.PreferredYears)
	}
}

func TestBuildPreferences_PeopleAffinity(t *testing.T) {
	mk := func(id int, actors []string, director string) models.SavedItem {
		it := savedMovie(id, []int{28}, 8, 2020)
		it.Actors = actors
		it.Director = director
		return it
	}

	saved := []models.SavedItem{
		mk(1, []string{"Keanu Reeves", "Carrie-Anne Moss", "Hugo Weaving", "Joe Pantoliano"}, "Lana Wachowski"),
		mk(2, []string{"KEANU REEVES", "Winona Ryder"}, "Francis Ford Coppola"),
		mk(3, []string{"keanu reeves"}, "Lana Wachowski"),
	}

	prefs := BuildPreferences(saved, testNow, DefaultParams())

	if len(prefs.ActorPreferences) == 0 || prefs.ActorPreferences[0] != "keanu reeves" {
		t.Errorf("ActorPreferences = %v, want keanu reeves first", prefs.ActorPreferences)
	}
	// Joe Pantoliano is the fourth listed actor of item 1: only the first 3 count.
	for _, a := range prefs.ActorPreferences {
		if a == "joe pantoliano" {
			t.Error("fourth listed actor must not count toward affinity")
		}
	}
	if len(prefs.DirectorPreferences) == 0 || prefs.DirectorPreferences[0] != "lana wachowski" {
		t.Errorf("DirectorPreferences = %v, want lana wachowski first", prefs.DirectorPreferences)
	}
}

func TestBuildPreferences_Deterministic(t *testing.T) {
	saved := []models.SavedItem{
		savedMovie(1, []int{28, 35}, 8.0, 2020),
		savedMovie(2, []int{18, 35}, 7.0, 2015),
		savedMovie(3, []int{28}, 9.0, 2022),
	}

	first := BuildPreferences(saved, testNow, DefaultParams())
	second := BuildPreferences(saved, testNow, DefaultParams())
	if !reflect.DeepEqual(first, second) {
		t.Error("BuildPreferences is not deterministic for fixed inputs")
	}
}
