package watchlistrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"

	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models"
)

const (
	WatchlistCollection = "watchlist"

	fieldOwner    = "owner_username"
	fieldMovieRef = "movie_ref"
	fieldAddedAt  = "added_at"
)

// entryRecord is the stored shape of a watchlist entry; the service list is
// kept as one JSON array column.
type entryRecord struct {
	ID          string  `bson:"id" mapstructure:"id" db:"id"`
	Owner       string  `bson:"owner_username" mapstructure:"owner_username" db:"owner_username"`
	MovieRef    string  `bson:"movie_ref" mapstructure:"movie_ref" db:"movie_ref"`
	Rating      float64 `bson:"rating" mapstructure:"rating" db:"rating"`
	Summary     string  `bson:"summary" mapstructure:"summary" db:"summary"`
	PosterURL   string  `bson:"poster_url" mapstructure:"poster_url" db:"poster_url"`
	AvailableOn string  `bson:"available_on" mapstructure:"available_on" db:"available_on"`
	AddedAt     int64   `bson:"added_at" mapstructure:"added_at" db:"added_at"`
}

func (r entryRecord) toModel() (models.WatchlistEntry, error) {
	services, err := decodeServices(r.AvailableOn)
	if err != nil {
		return models.WatchlistEntry{}, fmt.Errorf("entry '%s': %w", r.MovieRef, err)
	}
	return models.WatchlistEntry{
		ID:          r.ID,
		Owner:       r.Owner,
		MovieRef:    r.MovieRef,
		Rating:      r.Rating,
		Summary:     r.Summary,
		PosterURL:   r.PosterURL,
		AvailableOn: services,
		AddedAt:     time.Unix(0, r.AddedAt).UTC(),
	}, nil
}

func encodeServices(services []string) (string, error) {
	if services == nil {
		services = []string{}
	}
	b, err := json.Marshal(services)
	if err != nil {
		return "", fmt.Errorf("failed to encode available_on: %w", err)
	}
	return string(b), nil
}

func decodeServices(raw string) ([]string, error) {
	services := []string{}
	if raw == "" {
		return services, nil
	}
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, fmt.Errorf("failed to decode available_on: %w", err)
	}
	return services, nil
}

// WatchlistRepository implements interfaces.WatchlistRepository on top of the generic DBClient.
type WatchlistRepository struct {
	dbClient interfaces.DBClient
	schema   interfaces.Document
	now      func() time.Time
}

func newWatchlistRepository(dbClient interfaces.DBClient, schema interfaces.Document) (*WatchlistRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &WatchlistRepository{dbClient: dbClient, schema: schema, now: time.Now}, nil
}

// AddEntry stores the entry stamped with the current time. An existing
// (owner, movie) pair yields an error wrapping interfaces.ErrDuplicateKey.
func (r *WatchlistRepository) AddEntry(ctx context.Context, entry models.WatchlistEntry) (string, error) {
	addedAt := entry.AddedAt
	if addedAt.IsZero() {
		addedAt = r.now()
	}
	services, err := encodeServices(entry.AvailableOn)
	if err != nil {
		return "", err
	}

	doc := map[string]interface{}{
		fieldOwner:     entry.Owner,
		fieldMovieRef:  entry.MovieRef,
		"rating":       entry.Rating,
		"summary":      entry.Summary,
		"poster_url":   entry.PosterURL,
		"available_on": services,
		fieldAddedAt:   addedAt.UnixNano(),
	}

	insertedID, err := r.dbClient.InsertOne(ctx, WatchlistCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add '%s' to watchlist of '%s': %w", entry.MovieRef, entry.Owner, err)
	}
	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// ListEntries returns the owner's entries ordered by the time they were added.
func (r *WatchlistRepository) ListEntries(ctx context.Context, owner string) ([]models.WatchlistEntry, error) {
	docs, err := r.dbClient.FindMany(ctx, WatchlistCollection, map[string]interface{}{fieldOwner: owner}, fieldAddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist of '%s': %w", owner, err)
	}

	entries := make([]models.WatchlistEntry, 0, len(docs))
	for _, doc := range docs {
		var rec entryRecord
		if err := decode(doc, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode watchlist entry: %w", err)
		}
		entry, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FindEntry returns one entry; a missing entry yields an error wrapping interfaces.ErrNoDocuments.
func (r *WatchlistRepository) FindEntry(ctx context.Context, owner, movieRef string) (*models.WatchlistEntry, error) {
	var rec entryRecord
	filter := map[string]interface{}{fieldOwner: owner, fieldMovieRef: movieRef}
	if err := r.dbClient.FindOne(ctx, WatchlistCollection, filter, &rec); err != nil {
		return nil, fmt.Errorf("failed to find '%s' in watchlist of '%s': %w", movieRef, owner, err)
	}
	entry, err := rec.toModel()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes one entry and reports how many were removed (0 or 1).
func (r *WatchlistRepository) DeleteEntry(ctx context.Context, owner, movieRef string) (int64, error) {
	n, err := r.dbClient.DeleteOne(ctx, WatchlistCollection, map[string]interface{}{fieldOwner: owner, fieldMovieRef: movieRef})
	if err != nil {
		return 0, fmt.Errorf("failed to remove '%s' from watchlist of '%s': %w", movieRef, owner, err)
	}
	return n, nil
}

// DeleteAllEntries empties the owner's watchlist.
func (r *WatchlistRepository) DeleteAllEntries(ctx context.Context, owner string) (int64, error) {
	n, err := r.dbClient.DeleteMany(ctx, WatchlistCollection, map[string]interface{}{fieldOwner: owner})
	if err != nil {
		return 0, fmt.Errorf("failed to clear watchlist of '%s': %w", owner, err)
	}
	return n, nil
}

// EnsureIndices creates the watchlist table or collection and its indexes.
func (r *WatchlistRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, WatchlistCollection, r.schema)
}

// Close closes the database connection.
func (r *WatchlistRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

func decode(doc interfaces.Document, out *entryRecord) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(doc)
}
