package watchlistservice

import "errors"

const (
	ErrFailedToAddEntry    = "failed to add watchlist entry"
	ErrFailedToListEntries = "failed to list watchlist"
	ErrFailedToRemoveEntry = "failed to remove watchlist entry"
	ErrFailedToClear       = "failed to clear watchlist"
)

var (
	ErrInvalidEntry   = errors.New("owner and movie are required")
	ErrDuplicateEntry = errors.New("already in your watchlist")
	ErrEntryNotFound  = errors.New("not in your watchlist")
)
