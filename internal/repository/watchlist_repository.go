package repository

import (
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/lib/pq"

	"github.com/steodhiambo/movie-discovery-app/internal/models"
)

// WatchlistRepository owns the saved-items table. It is the only writer of
// the saved list; everything downstream treats the list as read-only input.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

const savedItemColumns = `tmdb_id, kind, title, overview, release_date,
	poster_url, backdrop_url, vote_average, vote_count, genre_ids, popularity,
	original_language, ratings, aggregated_score, data_source, actors,
	director, language, added_at, watched, watched_at`

// Insert adds an item to the watchlist. The (tmdb_id, kind) pair is unique;
// inserting a duplicate returns models.ErrAlreadySaved.
func (r *WatchlistRepository) Insert(item models.EnrichedItem) (*models.SavedItem, error) {
	var ratingsJSON []byte
	if item.Ratings != nil {
		var err error
		ratingsJSON, err = json.Marshal(item.Ratings)
		if err != nil {
			return nil, fmt.Errorf("marshal ratings: %w", err)
		}
	}

	_, err := r.db.Exec(`
		INSERT INTO watchlist_items (tmdb_id, kind, title, overview, release_date,
			poster_url, backdrop_url, vote_average, vote_count, genre_ids, popularity,
			original_language, ratings, aggregated_score, data_source, actors,
			director, language, added_at, watched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), FALSE)
	`, item.ID, item.Kind, item.Title, item.Overview, item.ReleaseDate,
		item.PosterURL, item.BackdropURL, item.VoteAverage, item.VoteCount,
		pq.Array(toInt64(item.GenreIDs)), item.Popularity, item.OriginalLanguage,
		nullableJSON(ratingsJSON), item.AggregatedScore, item.DataSource,
		pq.Array(item.Actors), item.Director, item.Language)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, models.ErrAlreadySaved
		}
		return nil, fmt.Errorf("insert watchlist item: %w", err)
	}

	return r.Get(item.ID, item.Kind)
}

// Get returns one saved item by its identity key.
func (r *WatchlistRepository) Get(tmdbID int, kind models.Kind) (*models.SavedItem, error) {
	row := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM watchlist_items WHERE tmdb_id = $1 AND kind = $2
	`, savedItemColumns), tmdbID, kind)

	item, err := scanSavedItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotInWatchlist
		}
		return nil, fmt.Errorf("get watchlist item: %w", err)
	}
	return item, nil
}

// List returns the full saved list, newest first.
func (r *WatchlistRepository) List() ([]models.SavedItem, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %s FROM watchlist_items ORDER BY added_at DESC
	`, savedItemColumns))
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	items := make([]models.SavedItem, 0)
	for rows.Next() {
		item, err := scanSavedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Delete removes an item from the watchlist.
func (r *WatchlistRepository) Delete(tmdbID int, kind models.Kind) error {
	res, err := r.db.Exec(`
		DELETE FROM watchlist_items WHERE tmdb_id = $1 AND kind = $2
	`, tmdbID, kind)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotInWatchlist
	}
	return nil
}

// ToggleWatched flips the watched flag. watched_at is set on the transition
// to watched and cleared on the transition back; added_at never changes.
func (r *WatchlistRepository) ToggleWatched(tmdbID int, kind models.Kind) (*models.SavedItem, error) {
	res, err := r.db.Exec(`
		UPDATE watchlist_items
		SET watched = NOT watched,
			watched_at = CASE WHEN NOT watched THEN NOW() ELSE NULL END
		WHERE tmdb_id = $1 AND kind = $2
	`, tmdbID, kind)
	if err != nil {
		return nil, fmt.Errorf("toggle watched: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, models.ErrNotInWatchlist
	}
	return r.Get(tmdbID, kind)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSavedItem(row rowScanner) (*models.SavedItem, error) {
	var item models.SavedItem
	var genreIDs []int64
	var actors []string
	var ratingsJSON []byte
	var watchedAt sql.NullTime

	err := row.Scan(
		&item.ID, &item.Kind, &item.Title, &item.Overview, &item.ReleaseDate,
		&item.PosterURL, &item.BackdropURL, &item.VoteAverage, &item.VoteCount,
		pq.Array(&genreIDs), &item.Popularity, &item.OriginalLanguage,
		&ratingsJSON, &item.AggregatedScore, &item.DataSource,
		pq.Array(&actors), &item.Director, &item.Language,
		&item.AddedAt, &item.Watched, &watchedAt,
	)
	if err != nil {
		return nil, err
	}

	item.GenreIDs = toInt(genreIDs)
	item.Actors = actors
	if len(ratingsJSON) > 0 {
		var ratings models.ProviderRatings
		if json.Unmarshal(ratingsJSON, &ratings) == nil {
			item.Ratings = &ratings
		}
	}
	if watchedAt.Valid {
		t := watchedAt.Time
		item.WatchedAt = &t
	}
	return &item, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}

func toInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

func toInt(in []int64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
