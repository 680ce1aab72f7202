package enrich

import (
	"math"
	"testing"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
	"github.com/steodhiambo/movie-discovery-app/internal/omdb"
)

func catalogItem(voteAverage float64) models.CatalogItem {
	return models.CatalogItem{
		ID:          603,
		Kind:        models.KindMovie,
		Title:       "The Matrix",
		ReleaseDate: "1999-03-31",
		VoteAverage: voteAverage,
		VoteCount:   24000,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestNormalize_SingleProviderKeepsFullScore(t *testing.T) {
	// With exactly one source present, renormalization must leave the score
	// untouched (rescaled to 0-10 where needed), not shrink it by the weights
	// of absent providers.
	tests := []struct {
		name string
		item models.CatalogItem
		raw  *omdb.Record
		want float64
	}{
		{
			name: "primary only",
			item: catalogItem(8.5),
			raw:  nil,
			want: 8.5,
		},
		{
			name: "imdb only",
			item: catalogItem(0),
			raw:  &omdb.Record{Response: "True", IMDbRating: "7.4"},
			want: 7.4,
		},
		{
			name: "rotten tomatoes only",
			item: catalogItem(0),
			raw: &omdb.Record{
				Response: "True",
				Ratings:  []omdb.SourceRating{{Source: "Rotten Tomatoes", Value: "94%"}},
			},
			want: 9.4,
		},
		{
			name: "metacritic only",
			item: catalogItem(0),
			raw:  &omdb.Record{Response: "True", Metascore: "84"},
			want: 8.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.item, tt.raw)
			if !almostEqual(got.AggregatedScore, tt.want) {
				t.Errorf("AggregatedScore = %v, want %v", got.AggregatedScore, tt.want)
			}
		})
	}
}

func TestNormalize_WeightedComposite(t *testing.T) {
	raw := &omdb.Record{
		Response:   "True",
		IMDbRating: "7.0",
		IMDbVotes:  "1,234,567",
	}
	got := Normalize(catalogItem(8.0), raw)

	// (8.0*0.25 + 7.0*0.35) / (0.25+0.35)
	want := (8.0*0.25 + 7.0*0.35) / 0.6
	if !almostEqual(got.AggregatedScore, want) {
		t.Errorf("AggregatedScore = %v, want %v", got.AggregatedScore, want)
	}
	if got.Ratings == nil || got.Ratings.IMDb == nil {
		t.Fatal("expected IMDb rating present")
	}
	if got.Ratings.IMDb.Votes != 1234567 {
		t.Errorf("IMDb votes = %d, want 1234567", got.Ratings.IMDb.Votes)
	}
}

func TestNormalize_ZeroMeansAbsent(t *testing.T) {
	// A provider reporting exactly 0 is treated as having no data, on both
	// sides of the merge.
	raw := &omdb.Record{Response: "True", IMDbRating: "0.0", Metascore: "0"}
	got := Normalize(catalogItem(0), raw)

	if got.Ratings != nil {
		t.Errorf("Ratings = %+v, want nil", got.Ratings)
	}
	if got.AggregatedScore != 0 {
		t.Errorf("AggregatedScore = %v, want 0", got.AggregatedScore)
	}
}

func TestNormalize_DefensiveParsing(t *testing.T) {
	raw := &omdb.Record{
		Response:   "True",
		IMDbRating: "N/A",
		IMDbVotes:  "N/A",
		Metascore:  "not-a-number",
		Ratings:    []omdb.SourceRating{{Source: "Rotten Tomatoes", Value: "N/A"}},
	}
	got := Normalize(catalogItem(7.2), raw)

	if got.Ratings == nil || got.Ratings.TMDB == nil {
		t.Fatal("expected primary rating present")
	}
	if got.Ratings.IMDb != nil || got.Ratings.RottenTomatoes != nil || got.Ratings.Metacritic != nil {
		t.Errorf("secondary ratings should all be absent, got %+v", got.Ratings)
	}
	if !almostEqual(got.AggregatedScore, 7.2) {
		t.Errorf("AggregatedScore = %v, want 7.2", got.AggregatedScore)
	}
}

func TestNormalize_DataSourceTag(t *testing.T) {
	t.Run("no secondary record", func(t *testing.T) {
		got := Normalize(catalogItem(8.0), nil)
		if got.DataSource != models.SourceTMDBOnly {
			t.Errorf("DataSource = %q, want %q", got.DataSource, models.SourceTMDBOnly)
		}
	})

	t.Run("secondary record matched", func(t *testing.T) {
		got := Normalize(catalogItem(8.0), &omdb.Record{Response: "True", IMDbRating: "7.9"})
		if got.DataSource != models.SourceTMDBPlusOMDB {
			t.Errorf("DataSource = %q, want %q", got.DataSource, models.SourceTMDBPlusOMDB)
		}
	})

	t.Run("unmatched record stays primary-only", func(t *testing.T) {
		got := Normalize(catalogItem(8.0), &omdb.Record{Response: "False", Error: "Movie not found!"})
		if got.DataSource != models.SourceTMDBOnly {
			t.Errorf("DataSource = %q, want %q", got.DataSource, models.SourceTMDBOnly)
		}
	})
}

func TestNormalize_PeopleMetadata(t *testing.T) {
	raw := &omdb.Record{
		Response: "True",
		Actors:   "Keanu Reeves, Laurence Fishburne, N/A",
		Director: "Lana Wachowski, Lilly Wachowski",
		Language: "English, French",
	}
	got := Normalize(catalogItem(8.0), raw)

	if len(got.Actors) != 2 || got.Actors[0] != "Keanu Reeves" || got.Actors[1] != "Laurence Fishburne" {
		t.Errorf("Actors = %v", got.Actors)
	}
	if got.Director != "Lana Wachowski" {
		t.Errorf("Director = %q, want %q", got.Director, "Lana Wachowski")
	}
	if got.Language != "English" {
		t.Errorf("Language = %q, want %q", got.Language, "English")
	}
}

func TestNormalize_IsPure(t *testing.T) {
	item := catalogItem(8.0)
	raw := &omdb.Record{Response: "True", IMDbRating: "7.9"}

	first := Normalize(item, raw)
	second := Normalize(item, raw)

	if first.AggregatedScore != second.AggregatedScore || first.DataSource != second.DataSource {
		t.Error("Normalize is not deterministic for fixed inputs")
	}
	if item.VoteAverage != 8.0 {
		t.Error("Normalize mutated its input")
	}
}
