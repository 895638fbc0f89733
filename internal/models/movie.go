package models

// Movie is the metadata record returned by the metadata provider.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Plot          string   `json:"plot"`
	Rating        float64  `json:"rating"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	PosterURL     string   `json:"poster_url,omitempty"`
	Genres        []string `json:"genres"`
	Cast          []string `json:"cast"`
	SimilarTitles []string `json:"similar_titles"`
}

// StreamingSource names a service the movie can be watched on.
type StreamingSource struct {
	Service   string `json:"service"`
	Available bool   `json:"available"`
}

// MovieInfo is a search result: the movie plus where to watch it. When the
// availability lookup fails the movie is still returned and
// AvailabilityError carries the reason.
type MovieInfo struct {
	Movie             *Movie            `json:"movie"`
	Availability      []StreamingSource `json:"availability"`
	AvailabilityError string            `json:"availability_error,omitempty"`
}
