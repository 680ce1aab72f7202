// Package tmdb wraps the TMDB API, the primary catalog provider. Raw provider
// shapes stay internal: every method returns models.CatalogItem values with
// the content kind tagged once at ingestion.
package tmdb

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

// TMDB image CDN bases.
const (
	ImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	ImageBaseW780 = "https://image.tmdb.org/t/p/w780"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new TMDB API client. rps bounds outgoing request rate.
func NewClient(apiKey, baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 5),
	}
}

// ---- TMDB response types (internal, not exposed to consumers) ----

type pageResponse struct {
	Page         int          `json:"page"`
	Results      []resultItem `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// resultItem covers both movie-shaped (title/release_date) and tv-shaped
// (name/first_air_date) records.
type resultItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	OriginalLanguage string  `json:"original_language"`
	MediaType        string  `json:"media_type"`
}

type detailResponse struct {
	resultItem

	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	IMDbID      string `json:"imdb_id"`
	ExternalIDs struct {
		IMDbID string `json:"imdb_id"`
	} `json:"external_ids"`
	Credits struct {
		Cast []struct {
			Name  string `json:"name"`
			Order int    `json:"order"`
		} `json:"cast"`
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

// Page is one page of catalog results.
type Page struct {
	Page         int
	TotalPages   int
	TotalResults int
	Items        []models.CatalogItem
}

// Detail is a single fully-detailed catalog item with credits.
type Detail struct {
	Item     models.CatalogItem
	Actors   []string
	Director string
}

// ---- Client methods ----

// Discover fetches a page of the discover endpoint for the given kind,
// sorted by popularity.
func (c *Client) Discover(ctx context.Context, kind models.Kind, page int) (*Page, error) {
	path := fmt.Sprintf("/discover/%s", kind)
	resp, err := c.getPage(ctx, path, url.Values{
		"sort_by": {"popularity.desc"},
		"page":    {fmt.Sprintf("%d", page)},
	})
	if err != nil {
		return nil, err
	}
	return toPage(resp, kind), nil
}

// Trending fetches a page of the weekly trending feed across both kinds.
func (c *Client) Trending(ctx context.Context, page int) (*Page, error) {
	resp, err := c.getPage(ctx, "/trending/all/week", url.Values{
		"page": {fmt.Sprintf("%d", page)},
	})
	if err != nil {
		return nil, err
	}
	return toPage(resp, ""), nil
}

// Search runs a multi search over movies and tv shows. Non-title results
// (people, collections) are dropped.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	resp, err := c.getPage(ctx, "/search/multi", url.Values{
		"query": {query},
		"page":  {fmt.Sprintf("%d", page)},
	})
	if err != nil {
		return nil, err
	}
	return toPage(resp, ""), nil
}

// GetDetail fetches full detail plus credits and external IDs for one title.
func (c *Client) GetDetail(ctx context.Context, kind models.Kind, id int) (*Detail, error) {
	reqURL := fmt.Sprintf("%s/%s/%d?api_key=%s&append_to_response=credits,external_ids",
		c.baseURL, kind, id, c.apiKey)

	body, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}

	item := toCatalogItem(resp.resultItem, kind)
	item.GenreIDs = make([]int, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		item.GenreIDs = append(item.GenreIDs, g.ID)
	}
	item.IMDbID = resp.IMDbID
	if item.IMDbID == "" {
		item.IMDbID = resp.ExternalIDs.IMDbID
	}

	detail := &Detail{Item: item}
	for _, cast := range resp.Credits.Cast {
		detail.Actors = append(detail.Actors, cast.Name)
	}
	for _, crew := range resp.Credits.Crew {
		if crew.Job == "Director" {
			detail.Director = crew.Name
			break
		}
	}
	return detail, nil
}

func (c *Client) getPage(ctx context.Context, path string, params url.Values) (*pageResponse, error) {
	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	body, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode page response: %w", err)
	}
	return &resp, nil
}

func (c *Client) doGet(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	slog.Debug("fetching TMDB", "url", reqURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// ---- Conversion ----

// toPage converts raw results, tagging each item's kind exactly once. When
// the endpoint is kind-specific the kind is forced; mixed feeds use the
// provider's media_type discriminator and drop anything else.
func toPage(resp *pageResponse, kind models.Kind) *Page {
	page := &Page{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Items:        make([]models.CatalogItem, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		k := kind
		if k == "" {
			k = models.Kind(r.MediaType)
			if !k.Valid() {
				continue
			}
		}
		page.Items = append(page.Items, toCatalogItem(r, k))
	}
	return page
}

func toCatalogItem(r resultItem, kind models.Kind) models.CatalogItem {
	item := models.CatalogItem{
		ID:               r.ID,
		Kind:             kind,
		Title:            r.Title,
		Overview:         r.Overview,
		ReleaseDate:      r.ReleaseDate,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		GenreIDs:         r.GenreIDs,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
	}
	if kind == models.KindTV {
		item.Title = r.Name
		item.ReleaseDate = r.FirstAirDate
	}
	if r.PosterPath != "" {
		item.PosterURL = ImageBaseW500 + r.PosterPath
	}
	if r.BackdropPath != "" {
		item.BackdropURL = ImageBaseW780 + r.BackdropPath
	}
	return item
}
