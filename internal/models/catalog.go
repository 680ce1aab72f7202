package models

// Kind discriminates movie-shaped from tv-shaped catalog records. It is set
// once at ingestion and never re-inferred downstream.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// Valid reports whether k is a known content kind.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTV
}

// CatalogItem is an immutable record fetched from the primary catalog
// provider (TMDB). Read-only after creation.
type CatalogItem struct {
	ID               int     `json:"id"`
	Kind             Kind    `json:"kind"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterURL        string  `json:"poster_url,omitempty"`
	BackdropURL      string  `json:"backdrop_url,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	IMDbID           string  `json:"imdb_id,omitempty"`
}

// Rating is a single provider's score on its native scale.
type Rating struct {
	Score float64 `json:"score"`
	Votes int     `json:"votes,omitempty"`
}

// ProviderRatings is a per-item snapshot of whatever rating sources had data.
// A nil sub-rating means the provider has no data, never a zero score.
type ProviderRatings struct {
	TMDB           *Rating `json:"tmdb,omitempty"`            // 0-10
	IMDb           *Rating `json:"imdb,omitempty"`            // 0-10
	RottenTomatoes *Rating `json:"rotten_tomatoes,omitempty"` // 0-100
	Metacritic     *Rating `json:"metacritic,omitempty"`      // 0-100
}

// Data source tags recording enrichment provenance.
const (
	SourceTMDBOnly     = "tmdb"
	SourceTMDBPlusOMDB = "tmdb+omdb"
)

// EnrichedItem is a CatalogItem plus whatever the secondary provider
// contributed: merged ratings, a 0-10 aggregated score, and cast/crew and
// language metadata. Produced once per fetch+enrich cycle, never mutated.
type EnrichedItem struct {
	CatalogItem

	Ratings         *ProviderRatings `json:"ratings,omitempty"`
	AggregatedScore float64          `json:"aggregated_score"`
	DataSource      string           `json:"data_source"`

	Actors   []string `json:"actors,omitempty"`
	Director string   `json:"director,omitempty"`
	Language string   `json:"language,omitempty"`
}

// BestRating returns the most trustworthy 0-10 score available for the item:
// the aggregated composite when any provider contributed, otherwise the
// primary provider's vote average.
func (e EnrichedItem) BestRating() float64 {
	if e.AggregatedScore > 0 {
		return e.AggregatedScore
	}
	return e.VoteAverage
}

// ListResponse is the paginated catalog listing response.
type ListResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Data         []EnrichedItem `json:"data"`
}

// ListParams holds query parameters for catalog listing.
type ListParams struct {
	Page int    `query:"page"`
	Kind string `query:"kind"`
}

// Validate sets defaults and validates parameters.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Kind != string(KindMovie) && p.Kind != string(KindTV) {
		p.Kind = string(KindMovie)
	}
}
