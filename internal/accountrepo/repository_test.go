package accountrepo

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

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

func newSQLiteRepo(t *testing.T) *AccountRepository {
	t.Helper()
	ctx := context.Background()

	client := sqlite.NewSQLiteDatabaseClient(&config.SQLiteConfig{
		ValidTables: []string{UsersCollection},
		ValidFields: []string{"id", "username", "password_hash", "created_at"},
	}, zerolog.NewLogger("test", io.Discard))
	require.NoError(t, client.Connect(ctx, sqlite.MemoryDSN))

	repo, err := NewSQLAccountRepository(client)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(ctx))
	// idempotent
	require.NoError(t, repo.EnsureIndices(ctx))
	t.Cleanup(func() { _ = repo.Close(ctx) })
	return repo
}

func TestAccountRepository_AddAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	user := models.NewUser("alice", "$2a$10$hash")
	id, err := repo.AddUser(ctx, *user)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.User{
		ID:           id,
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    user.CreatedAt,
	}, got)
}

func TestAccountRepository_DuplicateUsername(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.AddUser(ctx, *models.NewUser("alice", "first"))
	require.NoError(t, err)

	_, err = repo.AddUser(ctx, *models.NewUser("alice", "second"))
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "first", got.PasswordHash)
}

func TestAccountRepository_GetUserByUsername(t *testing.T) {
	repo := newSQLiteRepo(t)

	tests := []struct {
		name     string
		username string
	}{
		{name: "missing user", username: "ghost"},
		{name: "empty username", username: ""},
		{name: "too long username", username: strings.Repeat("a", models.MaxUsernameLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetUserByUsername(context.Background(), tt.username)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, interfaces.ErrNoDocuments)
		})
	}
}

func TestAccountRepository_InsertedIDType(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", mock.Anything, UsersCollection, mock.Anything).Return(42, nil)

	repo, err := NewSQLAccountRepository(db)
	require.NoError(t, err)

	_, err = repo.AddUser(context.Background(), models.User{Username: "alice"})
	assert.Error(t, err)
}

func TestAccountRepository_PassesThroughClientErrors(t *testing.T) {
	boom := errors.New("boom")
	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", mock.Anything, UsersCollection, mock.Anything).Return(nil, boom)

	repo, err := NewSQLAccountRepository(db)
	require.NoError(t, err)

	_, err = repo.AddUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, boom)
}

func TestNewMongoAccountRepository_Schema(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("EnsureSchema", mock.Anything, UsersCollection, mock.MatchedBy(func(s interface{}) bool {
		model, ok := s.(mongosdk.IndexModel)
		return ok && model.Options != nil && model.Options.Unique != nil && *model.Options.Unique
	})).Return(nil)
	db.On("Disconnect", mock.Anything).Return(nil)

	repo, err := NewMongoAccountRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(context.Background()))
	require.NoError(t, repo.Close(context.Background()))
}

func TestNewAccountRepository_NilClient(t *testing.T) {
	_, err := NewSQLAccountRepository(nil)
	assert.Error(t, err)
}
