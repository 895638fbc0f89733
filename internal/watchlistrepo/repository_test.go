package watchlistrepo

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mongosdk "go.mongodb.org/mongo-driver/mongo"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/interfaces/mocks"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/pkg/databases/sqlite"
	"github.com/haguru/kakashi/pkg/zerolog"
)

func newSQLiteRepo(t *testing.T) *WatchlistRepository {
	t.Helper()
	ctx := context.Background()

	client := sqlite.NewSQLiteDatabaseClient(&config.SQLiteConfig{
		ValidTables: []string{WatchlistCollection},
		ValidFields: []string{"id", "owner_username", "movie_ref", "rating", "summary", "poster_url", "available_on", "added_at"},
	}, zerolog.NewLogger("test", io.Discard))
	require.NoError(t, client.Connect(ctx, sqlite.MemoryDSN))

	repo, err := NewSQLWatchlistRepository(client)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(ctx))
	require.NoError(t, repo.EnsureIndices(ctx))

	// deterministic, strictly increasing clock
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	t.Cleanup(func() { _ = repo.Close(ctx) })
	return repo
}

func entry(owner, ref string) models.WatchlistEntry {
	return models.WatchlistEntry{
		Owner:       owner,
		MovieRef:    ref,
		Rating:      8.3,
		Summary:     "A heist goes wrong.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/heat.jpg",
		AvailableOn: []string{"Netflix", "Max"},
	}
}

func TestWatchlistRepository_AddListFind(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	id, err := repo.AddEntry(ctx, entry("alice", "Heat"))
	require.NoError(t, err)

	list, err := repo.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.WatchlistEntry{
		ID:          id,
		Owner:       "alice",
		MovieRef:    "Heat",
		Rating:      8.3,
		Summary:     "A heist goes wrong.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/heat.jpg",
		AvailableOn: []string{"Netflix", "Max"},
		AddedAt:     time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC),
	}, list[0])

	found, err := repo.FindEntry(ctx, "alice", "Heat")
	require.NoError(t, err)
	assert.Equal(t, list[0], *found)

	_, err = repo.FindEntry(ctx, "bob", "Heat")
	assert.ErrorIs(t, err, interfaces.ErrNoDocuments)
}

func TestWatchlistRepository_InsertionOrderAndOwnership(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, ref := range []string{"Heat", "Ronin", "Collateral"} {
		_, err := repo.AddEntry(ctx, entry("alice", ref))
		require.NoError(t, err)
	}
	_, err := repo.AddEntry(ctx, entry("bob", "Heat"))
	require.NoError(t, err)

	list, err := repo.ListEntries(ctx, "alice")
	require.NoError(t, err)

	refs := make([]string, 0, len(list))
	for _, e := range list {
		refs = append(refs, e.MovieRef)
	}
	assert.Equal(t, []string{"Heat", "Ronin", "Collateral"}, refs)

	empty, err := repo.ListEntries(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWatchlistRepository_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, ref := range []string{"Zodiac", "Alien", "Memento", "Heat"} {
		e := entry("alice", ref)
		e.AddedAt = at
		_, err := repo.AddEntry(ctx, e)
		require.NoError(t, err)
	}

	list, err := repo.ListEntries(ctx, "alice")
	require.NoError(t, err)

	refs := make([]string, 0, len(list))
	for _, e := range list {
		refs = append(refs, e.MovieRef)
	}
	assert.Equal(t, []string{"Zodiac", "Alien", "Memento", "Heat"}, refs)
}

func TestWatchlistRepository_AvailableOnRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		ref      string
		services []string
		want     []string
	}{
		{name: "comma inside a name", ref: "Heat", services: []string{"Prime Video (rent, buy)", "Netflix"}, want: []string{"Prime Video (rent, buy)", "Netflix"}},
		{name: "quotes and spaces", ref: "Ronin", services: []string{` "Max" `, "Hulu"}, want: []string{` "Max" `, "Hulu"}},
		{name: "nil list", ref: "Alien", services: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry("alice", tt.ref)
			e.AvailableOn = tt.services
			_, err := repo.AddEntry(ctx, e)
			require.NoError(t, err)

			got, err := repo.FindEntry(ctx, "alice", tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AvailableOn)
		})
	}
}

func TestWatchlistRepository_Duplicate(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.AddEntry(ctx, entry("alice", "Heat"))
	require.NoError(t, err)

	_, err = repo.AddEntry(ctx, entry("alice", "Heat"))
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)

	list, err := repo.ListEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWatchlistRepository_Delete(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, ref := range []string{"Heat", "Ronin"} {
		_, err := repo.AddEntry(ctx, entry("alice", ref))
		require.NoError(t, err)
	}
	_, err := repo.AddEntry(ctx, entry("bob", "Heat"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		owner string
		ref   string
		want  int64
	}{
		{name: "existing entry", owner: "alice", ref: "Heat", want: 1},
		{name: "already removed", owner: "alice", ref: "Heat", want: 0},
		{name: "other owner untouched", owner: "carol", ref: "Ronin", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.DeleteEntry(ctx, tt.owner, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	n, err := repo.DeleteAllEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	bobs, err := repo.ListEntries(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}

func TestWatchlistRepository_DecodesMongoDocuments(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("FindMany", mock.Anything, WatchlistCollection, map[string]interface{}{"owner_username": "alice"}, "added_at").
		Return([]interfaces.Document{
			map[string]interface{}{
				"id":             "e-1",
				"owner_username": "alice",
				"movie_ref":      "Heat",
				"rating":         int32(8),
				"summary":        "",
				"poster_url":     "",
				"available_on":   "",
				"added_at":       int64(1714564800000000000),
			},
		}, nil)

	repo, err := NewMongoWatchlistRepository(db)
	require.NoError(t, err)

	list, err := repo.ListEntries(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, float64(8), list[0].Rating)
	assert.Equal(t, []string{}, list[0].AvailableOn)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), list[0].AddedAt)
}

func TestWatchlistRepository_RejectsMalformedServices(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("FindMany", mock.Anything, WatchlistCollection, mock.Anything, "added_at").
		Return([]interfaces.Document{
			map[string]interface{}{"id": "e-1", "owner_username": "alice", "movie_ref": "Heat", "available_on": "Netflix,Hulu"},
		}, nil)

	repo, err := NewSQLWatchlistRepository(db)
	require.NoError(t, err)

	list, err := repo.ListEntries(context.Background(), "alice")
	assert.Nil(t, list)
	assert.ErrorContains(t, err, "available_on")
}

func TestNewMongoWatchlistRepository_Schema(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("EnsureSchema", mock.Anything, WatchlistCollection, mock.MatchedBy(func(s interface{}) bool {
		idx, ok := s.([]mongosdk.IndexModel)
		return ok && len(idx) == 2 && *idx[0].Options.Unique
	})).Return(nil)

	repo, err := NewMongoWatchlistRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(context.Background()))
}
