package models

import "time"

// WatchlistEntry is one movie saved by one user. The payload fields are
// stored as given; (Owner, MovieRef) identifies the entry.
type WatchlistEntry struct {
	ID          string    `json:"id,omitempty"`
	Owner       string    `json:"owner"`
	MovieRef    string    `json:"movie_ref"`
	Rating      float64   `json:"rating"`
	Summary     string    `json:"summary"`
	PosterURL   string    `json:"poster_url,omitempty"`
	AvailableOn []string  `json:"available_on"`
	AddedAt     time.Time `json:"added_at"`
}
