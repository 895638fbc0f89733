package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateKey is returned by InsertOne when a unique constraint or index rejects the document.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNoDocuments is returned by FindOne when nothing matches the filter.
	ErrNoDocuments = errors.New("no documents found")
)

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. Filters and inserted documents are
// map[string]interface{}; FindOne results are pointers to tagged structs.
type Document interface{}

// DBClient defines the interface for a generic database client.
// It abstracts common database operations across different database types (e.g., MongoDB, SQL).
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	// Returns an error if the disconnection fails.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection/table.
	// An "id" is generated when the document has none.
	// Returns the ID of the inserted document and ErrDuplicateKey on a uniqueness violation.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document from the specified collection/table
	// that matches the provided filter and decodes it into 'result'.
	// Returns ErrNoDocuments if nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany retrieves multiple documents from the specified collection/table
	// that match the provided filter, ascending by sortField when it is not empty.
	FindMany(ctx context.Context, collectionName string, filter Document, sortField string) ([]Document, error)

	// DeleteOne deletes a single document from the specified collection/table
	// that matches the provided filter.
	// Returns the count of deleted documents and an error.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)

	// DeleteMany deletes multiple documents from the specified collection/table
	// that match the provided filter.
	// Returns the count of deleted documents and an error.
	DeleteMany(ctx context.Context, collectionName string, filter Document) (int64, error)

	// EnsureSchema applies a backend specific schema definition: a DDL statement
	// for SQL databases, a mongo.IndexModel for MongoDB.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error
}
