package watchlistrepo

import "github.com/haguru/kakashi/internal/interfaces"

// watchlistTable is valid for both SQLite and PostgreSQL.
var watchlistTable = []string{
	`CREATE TABLE IF NOT EXISTS watchlist (
		id TEXT PRIMARY KEY,
		owner_username TEXT NOT NULL,
		movie_ref TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		summary TEXT NOT NULL DEFAULT '',
		poster_url TEXT NOT NULL DEFAULT '',
		available_on TEXT NOT NULL DEFAULT '[]',
		added_at BIGINT NOT NULL,
		UNIQUE (owner_username, movie_ref)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_owner ON watchlist (owner_username, added_at)`,
}

// NewSQLWatchlistRepository creates a watchlist repository over an SQLite or PostgreSQL client.
func NewSQLWatchlistRepository(dbClient interfaces.DBClient) (*WatchlistRepository, error) {
	return newWatchlistRepository(dbClient, watchlistTable)
}
