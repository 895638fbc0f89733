package accountrepo

import (
	"context"
	"fmt"

	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models"
)

const UsersCollection = "users"

// AccountRepository implements interfaces.AccountRepository on top of the
// generic DBClient. Only the schema differs between backends.
type AccountRepository struct {
	dbClient interfaces.DBClient
	schema   interfaces.Document
}

func newAccountRepository(dbClient interfaces.DBClient, schema interfaces.Document) (*AccountRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &AccountRepository{dbClient: dbClient, schema: schema}, nil
}

// AddUser saves a new user and returns its ID. A taken username yields an
// error wrapping interfaces.ErrDuplicateKey.
func (r *AccountRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := map[string]interface{}{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}
	if user.ID != "" {
		doc["id"] = user.ID
	}

	insertedID, err := r.dbClient.InsertOne(ctx, UsersCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add user '%s': %w", user.Username, err)
	}
	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// GetUserByUsername returns the stored user. A missing user, or a name no
// account could have been registered under, yields an error wrapping
// interfaces.ErrNoDocuments.
func (r *AccountRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if !models.ValidUsername(username) {
		return nil, fmt.Errorf("failed to get user by username: %w", interfaces.ErrNoDocuments)
	}

	var user models.User
	filter := map[string]interface{}{"username": username}
	if err := r.dbClient.FindOne(ctx, UsersCollection, filter, &user); err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// EnsureIndices creates the users table or collection with a unique username.
func (r *AccountRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, UsersCollection, r.schema)
}

// Close closes the database connection.
func (r *AccountRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
