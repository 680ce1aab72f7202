package models

import "errors"

// Sentinel errors shared by the service and handler layers.
var (
	ErrInvalidItemID  = errors.New("invalid item ID")
	ErrInvalidKind    = errors.New("invalid content kind")
	ErrAlreadySaved   = errors.New("item already in watchlist")
	ErrNotInWatchlist = errors.New("item not in watchlist")
)
