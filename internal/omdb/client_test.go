package omdb

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

func TestLookupByID_PassesRawFieldsThrough(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0133093" {
			t.Errorf("i = %q, want tt0133093", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want test-key", got)
		}
		w.Write([]byte(`{
			"Title": "The Matrix",
			"imdbRating": "8.7",
			"imdbVotes": "1,234,567",
			"Metascore": "N/A",
			"Ratings": [{"Source": "Rotten Tomatoes", "Value": "83%"}],
			"Response": "True"
		}`))
	})
	defer srv.Close()

	rec, err := c.LookupByID(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("LookupByID returned error: %v", err)
	}
	if !rec.Found() {
		t.Fatal("expected a matched record")
	}
	// The client must not interpret the raw fields; "N/A" survives as-is.
	if rec.IMDbRating != "8.7" || rec.IMDbVotes != "1,234,567" || rec.Metascore != "N/A" {
		t.Errorf("raw fields altered: %+v", rec)
	}
	if len(rec.Ratings) != 1 || rec.Ratings[0].Value != "83%" {
		t.Errorf("Ratings = %+v", rec.Ratings)
	}
}

func TestLookup_MissIsNotAnError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})
	defer srv.Close()

	rec, err := c.LookupByTitle(context.Background(), "No Such Film", 1999, models.KindMovie)
	if err != nil {
		t.Fatalf("miss should not be an error, got %v", err)
	}
	if rec != nil {
		t.Errorf("rec = %+v, want nil", rec)
	}
}

func TestLookupByTitle_QueryShape(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("t") != "Breaking Bad" || q.Get("y") != "2008" || q.Get("type") != "series" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"Title": "Breaking Bad", "Response": "True"}`))
	})
	defer srv.Close()

	if _, err := c.LookupByTitle(context.Background(), "Breaking Bad", 2008, models.KindTV); err != nil {
		t.Fatalf("LookupByTitle returned error: %v", err)
	}
}

func TestLookup_EmptyIdentitySkipsRequest(t *testing.T) {
	called := false
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer srv.Close()

	if rec, err := c.LookupByID(context.Background(), ""); rec != nil || err != nil {
		t.Errorf("LookupByID(\"\") = (%v, %v), want (nil, nil)", rec, err)
	}
	if rec, err := c.LookupByTitle(context.Background(), "", 0, models.KindMovie); rec != nil || err != nil {
		t.Errorf("LookupByTitle(\"\") = (%v, %v), want (nil, nil)", rec, err)
	}
	if called {
		t.Error("client hit the network for an empty identity")
	}
}

func TestLookup_UpstreamErrorSurfaces(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	if _, err := c.LookupByID(context.Background(), "tt0133093"); err == nil {
		t.Error("expected an error for a 500 response")
	}
}
