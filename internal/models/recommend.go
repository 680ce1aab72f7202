package models

// GenreAffinity is one entry of the derived favorite-genre list. Weight grows
// with both how often the genre appears in the saved list and how well the
// user rated items carrying it.
type GenreAffinity struct {
	GenreID int     `json:"genre_id"`
	Name    string  `json:"name,omitempty"`
	Weight  float64 `json:"weight"`
}

// Band is a closed numeric interval.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// UserPreferences is the taste profile derived from the saved-items list.
// It is ephemeral: recomputed from scratch on every saved-list change, never
// persisted.
type UserPreferences struct {
	FavoriteGenres      []GenreAffinity `json:"favorite_genres"`
	PreferredRating     Band            `json:"preferred_rating_range"`
	PreferredYears      Band            `json:"preferred_year_range"`
	AverageRating       float64         `json:"average_rating"`
	TotalWatched        int             `json:"total_watched"` // historical name: saved-list size
	PreferredLanguages  []string        `json:"preferred_languages"`
	ActorPreferences    []string        `json:"actor_preferences"`
	DirectorPreferences []string        `json:"director_preferences"`
}

// Recommendation categories.
const (
	CategoryBecauseYouWatched = "because_you_watched"
	CategoryGenreMatch        = "genre_match"
	CategoryHighlyRated       = "highly_rated"
	CategoryTrending          = "trending"
	CategorySimilarTaste      = "similar_taste"
)

// Reason kinds.
const (
	ReasonGenre       = "genre"
	ReasonHighlyRated = "highly_rated"
	ReasonPeople      = "people"
	ReasonTrending    = "trending"
)

// RecommendationReason is one human-readable justification for a
// recommendation. Confidence is independent of the aggregate score.
type RecommendationReason struct {
	Kind       string  `json:"kind"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recommendation is one ranked output item. Regenerated per request, never
// stored.
type Recommendation struct {
	Item     EnrichedItem           `json:"item"`
	Score    float64                `json:"score"`
	Reasons  []RecommendationReason `json:"reasons"`
	Category string                 `json:"category"`
}

// RecommendationResponse is the paginated recommendation listing.
type RecommendationResponse struct {
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	TotalResults int              `json:"total_results"`
	Data         []Recommendation `json:"data"`
}
