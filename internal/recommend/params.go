// Package recommend implements the content-based recommendation core: taste
// profile derivation from the saved-items list, per-candidate match scoring,
// and ranked output assembly. Every function in this package is a pure,
// deterministic transformation over in-memory data; the current time is an
// explicit argument so nothing here reads the clock.
package recommend

// Sub-score weights. The five terms are always evaluated (contributing 0 when
// they don't apply), so they sum to the theoretical maximum of 1.0 and the
// final score needs no renormalization.
const (
	weightGenre      = 0.40
	weightRating     = 0.25
	weightYear       = 0.15
	weightPopularity = 0.10
	weightPeople     = 0.10
)

// Retention caps for the derived taste profile.
const (
	maxFavoriteGenres = 5
	maxLanguages      = 3
	maxActors         = 10
	maxDirectors      = 5

	// Only the first few listed actors of a saved item count toward actor
	// affinity, so large ensembles don't dominate the profile.
	actorsPerSavedItem = 3

	// Share of distinct release years (most recent first) that define the
	// preferred year band.
	recentYearShare = 0.7
)

// Params carries the tunable constants of the engine. The defaults reproduce
// the product's current behavior; none of them is derived from anything, they
// are knobs and stay configurable on purpose.
type Params struct {
	// PopularityNorm divides raw provider popularity when normalizing it to
	// [0,1]. Provider popularity is unbounded; 1000 maps "very popular" to a
	// full sub-score.
	PopularityNorm float64

	// RatingBandOffset is subtracted from the user's average rating to form
	// the lower edge of the preferred rating band.
	RatingBandOffset float64

	// MinScore is the cutoff below which a scored candidate is silently
	// excluded from ranked output.
	MinScore float64

	// TrendingFloor is the minimum popularity a candidate needs to appear in
	// cold-start output.
	TrendingFloor float64
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		PopularityNorm:   1000,
		RatingBandOffset: 1.5,
		MinScore:         0.3,
		TrendingFloor:    100,
	}
}
