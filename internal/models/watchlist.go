package models

import "time"

// SavedItem is a watchlist entry. Identity key is the (ID, Kind) pair; no two
// saved items share both. AddedAt is set at insertion and never changes.
// WatchedAt is set on the transition to watched and cleared on the transition
// back.
type SavedItem struct {
	EnrichedItem

	AddedAt   time.Time  `json:"added_at"`
	Watched   bool       `json:"watched"`
	WatchedAt *time.Time `json:"watched_at,omitempty"`
}

// SaveItemRequest is the request body for adding an item to the watchlist.
// The client submits the enriched item it already holds so the store needs no
// second round trip to the providers.
type SaveItemRequest struct {
	Item EnrichedItem `json:"item"`
}

// Validate checks the minimal fields the store needs for identity.
func (r *SaveItemRequest) Validate() error {
	if r.Item.ID <= 0 {
		return ErrInvalidItemID
	}
	if !r.Item.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// WatchlistResponse is the full saved-items listing.
type WatchlistResponse struct {
	Count int         `json:"count"`
	Items []SavedItem `json:"items"`
}
