package interfaces

import (
	"context"

	"github.com/haguru/kakashi/internal/models"
)

// AccountRepository defines the contract for storing and retrieving User data.
// It remains database-agnostic.
type AccountRepository interface {
	AddUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns ErrNoDocuments when the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// WatchlistRepository persists per-user saved movies.
type WatchlistRepository interface {
	AddEntry(ctx context.Context, entry models.WatchlistEntry) (string, error)
	// ListEntries returns the owner's entries in insertion order.
	ListEntries(ctx context.Context, owner string) ([]models.WatchlistEntry, error)
	// FindEntry returns ErrNoDocuments when the owner has not saved movieRef.
	FindEntry(ctx context.Context, owner, movieRef string) (*models.WatchlistEntry, error)
	DeleteEntry(ctx context.Context, owner, movieRef string) (int64, error)
	DeleteAllEntries(ctx context.Context, owner string) (int64, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
