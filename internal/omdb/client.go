// Package omdb wraps the OMDb API, the secondary ratings provider. The client
// returns raw records untouched: numeric fields stay strings and the "N/A"
// sentinel survives. Parsing them is the enrichment layer's job.
package omdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

// Client is the OMDb API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new OMDb API client. rps bounds outgoing request rate.
func NewClient(apiKey, baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// SourceRating is one entry of the OMDb per-source ratings array, e.g.
// {"Source": "Rotten Tomatoes", "Value": "94%"}.
type SourceRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Record is a raw OMDb title record. String fields may hold "N/A".
type Record struct {
	Title      string         `json:"Title"`
	Year       string         `json:"Year"`
	Genre      string         `json:"Genre"`
	Director   string         `json:"Director"`
	Actors     string         `json:"Actors"`
	Language   string         `json:"Language"`
	IMDbRating string         `json:"imdbRating"`
	IMDbVotes  string         `json:"imdbVotes"`
	Metascore  string         `json:"Metascore"`
	Ratings    []SourceRating `json:"Ratings"`
	IMDbID     string         `json:"imdbID"`
	Type       string         `json:"Type"`
	Response   string         `json:"Response"`
	Error      string         `json:"Error"`
}

// Found reports whether the lookup matched a title.
func (r *Record) Found() bool {
	return r != nil && r.Response == "True"
}

// LookupByID fetches a record by IMDb ID. A miss returns (nil, nil): the
// caller falls back to primary-only data, it is not an error.
func (c *Client) LookupByID(ctx context.Context, imdbID string) (*Record, error) {
	if imdbID == "" {
		return nil, nil
	}
	return c.lookup(ctx, url.Values{"i": {imdbID}})
}

// LookupByTitle fetches a record by title, optionally narrowed by release
// year and content kind. A miss returns (nil, nil).
func (c *Client) LookupByTitle(ctx context.Context, title string, year int, kind models.Kind) (*Record, error) {
	if title == "" {
		return nil, nil
	}
	params := url.Values{"t": {title}}
	if year > 0 {
		params.Set("y", fmt.Sprintf("%d", year))
	}
	switch kind {
	case models.KindMovie:
		params.Set("type", "movie")
	case models.KindTV:
		params.Set("type", "series")
	}
	return c.lookup(ctx, params)
}

func (c *Client) lookup(ctx context.Context, params url.Values) (*Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OMDb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OMDb API returned status %d: %s", resp.StatusCode, string(body))
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode OMDb response: %w", err)
	}

	if !record.Found() {
		slog.Debug("OMDb lookup missed", "error", record.Error)
		return nil, nil
	}
	return &record, nil
}
