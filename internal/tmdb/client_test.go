package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient("test-key", srv.URL, 1000), srv
}

func TestDiscover_TagsKindAtIngestion(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/tv" {
			t.Errorf("path = %q, want /discover/tv", r.URL.Path)
		}
		w.Write([]byte(`{
			"page": 1,
			"results": [{
				"id": 1396,
				"name": "Breaking Bad",
				"first_air_date": "2008-01-20",
				"vote_average": 8.9,
				"genre_ids": [18, 80],
				"popularity": 450.5,
				"poster_path": "/poster.jpg"
			}],
			"total_pages": 10,
			"total_results": 200
		}`))
	})
	defer srv.Close()

	page, err := c.Discover(context.Background(), models.KindTV, 1)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(page.Items))
	}

	item := page.Items[0]
	if item.Kind != models.KindTV {
		t.Errorf("Kind = %q, want tv", item.Kind)
	}
	// tv-shaped records map name/first_air_date onto the common fields.
	if item.Title != "Breaking Bad" || item.ReleaseDate != "2008-01-20" {
		t.Errorf("Title/ReleaseDate = %q/%q", item.Title, item.ReleaseDate)
	}
	if item.PosterURL != ImageBaseW500+"/poster.jpg" {
		t.Errorf("PosterURL = %q", item.PosterURL)
	}
}

func TestSearch_DropsNonTitleResults(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "media_type": "movie"},
				{"id": 6384, "name": "Keanu Reeves", "media_type": "person"},
				{"id": 1396, "name": "Breaking Bad", "media_type": "tv"}
			],
			"total_pages": 1,
			"total_results": 3
		}`))
	})
	defer srv.Close()

	page, err := c.Search(context.Background(), "matrix", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 (person dropped)", len(page.Items))
	}
	if page.Items[0].Kind != models.KindMovie || page.Items[1].Kind != models.KindTV {
		t.Errorf("kinds = %q/%q", page.Items[0].Kind, page.Items[1].Kind)
	}
}

func TestGetDetail_ExtractsCreditsAndIMDbID(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("path = %q, want /movie/603", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"release_date": "1999-03-31",
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
			"imdb_id": "tt0133093",
			"credits": {
				"cast": [
					{"name": "Keanu Reeves", "order": 0},
					{"name": "Laurence Fishburne", "order": 1}
				],
				"crew": [
					{"name": "Joel Silver", "job": "Producer"},
					{"name": "Lana Wachowski", "job": "Director"}
				]
			}
		}`))
	})
	defer srv.Close()

	detail, err := c.GetDetail(context.Background(), models.KindMovie, 603)
	if err != nil {
		t.Fatalf("GetDetail returned error: %v", err)
	}

	if got := detail.Item.GenreIDs; len(got) != 2 || got[0] != 28 || got[1] != 878 {
		t.Errorf("GenreIDs = %v", got)
	}
	if detail.Item.IMDbID != "tt0133093" {
		t.Errorf("IMDbID = %q", detail.Item.IMDbID)
	}
	if len(detail.Actors) != 2 || detail.Actors[0] != "Keanu Reeves" {
		t.Errorf("Actors = %v", detail.Actors)
	}
	if detail.Director != "Lana Wachowski" {
		t.Errorf("Director = %q", detail.Director)
	}
}

func TestGetDetail_TVFallsBackToExternalIDs(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 1396,
			"name": "Breaking Bad",
			"external_ids": {"imdb_id": "tt0903747"}
		}`))
	})
	defer srv.Close()

	detail, err := c.GetDetail(context.Background(), models.KindTV, 1396)
	if err != nil {
		t.Fatalf("GetDetail returned error: %v", err)
	}
	if detail.Item.IMDbID != "tt0903747" {
		t.Errorf("IMDbID = %q, want tt0903747", detail.Item.IMDbID)
	}
}

func TestClient_Non200IsAnError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message": "Invalid API key"}`, http.StatusUnauthorized)
	})
	defer srv.Close()

	if _, err := c.Discover(context.Background(), models.KindMovie, 1); err == nil {
		t.Error("expected an error for a 401 response")
	}
}
