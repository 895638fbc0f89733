package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
	// DOCIDFIELD is the application level identifier stored next to _id.
	DOCIDFIELD = "id"
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	databaseName     string
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names
	logger           interfaces.Logger
}

// NewMongoDB returns an unconnected MongoDB client.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) *MongoDBClient {
	return &MongoDBClient{
		timeout:          dbConfig.Timeout,
		databaseName:     dbConfig.DatabaseName,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
		logger:           logger,
	}
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>"; the configured
// database name wins over the DSN path.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName := m.databaseName
	if databaseName == "" {
		var err error
		databaseName, err = getDBNameFromMongoDSN(dsn)
		if err != nil {
			return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
		}
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil && m.ServerOpts.ServerAPIVersion != "" {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Info("Connecting to MongoDB", "database", databaseName)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}

	m.client = client
	m.db = client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database. Calling it again is a no-op.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

// InsertOne inserts a document and returns its "id" field, generating one when absent.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}

	sanitized, err := m.sanitizeDocument(document)
	if err != nil {
		return nil, err
	}
	id, ok := sanitized[DOCIDFIELD]
	if !ok {
		id = uuid.NewString()
		sanitized[DOCIDFIELD] = id
	}

	m.logger.Debug("Inserting one", "collection", collectionName)
	if _, err := coll.InsertOne(ctx, sanitized); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
		}
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return id, nil
}

// FindOne retrieves a single document from the specified collection using a filter
// and decodes it into result. Returns ErrNoDocuments when nothing matches.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return err
	}

	err = coll.FindOne(ctx, sanitizedFilter).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return interfaces.ErrNoDocuments
		}
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany retrieves multiple documents from the specified collection, ascending by
// sortField and then _id when set. Documents are returned as map[string]interface{} without _id.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, sortField string) ([]interfaces.Document, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}
	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find()
	if sortField != "" {
		if !m.validFields[sortField] {
			return nil, fmt.Errorf("MongoDBClient: Invalid sort field: %s", sortField)
		}
		// _id is an ObjectID, so ties fall back to insertion order
		findOpts.SetSort(bson.D{{Key: sortField, Value: 1}, {Key: IDFIELD, Value: 1}})
	}

	cursor, err := coll.Find(ctx, sanitizedFilter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			m.logger.Warn("Failed to close cursor", "error", err)
		}
	}()

	results := make([]interfaces.Document, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
		}
		delete(doc, IDFIELD)
		results = append(results, map[string]interface{}(doc))
	}

	return results, cursor.Err()
}

// DeleteOne removes a single document from the specified collection using a filter.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}
	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return 0, err
	}
	if len(sanitizedFilter) == 0 {
		return 0, fmt.Errorf("MongoDBClient: DeleteOne requires a non-empty filter")
	}

	res, err := coll.DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// DeleteMany removes multiple documents from a collection using a filter.
func (m *MongoDBClient) DeleteMany(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}
	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteMany(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting many from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.client.Ping(ctx, nil)
}

// EnsureSchema creates the indexes given as a mongo.IndexModel or []mongo.IndexModel.
// If the collection does not exist, it will be created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	var models []mongo.IndexModel
	switch s := schema.(type) {
	case mongo.IndexModel:
		models = []mongo.IndexModel{s}
	case []mongo.IndexModel:
		models = s
	default:
		return fmt.Errorf("EnsureSchema: expected mongo.IndexModel for MongoDB")
	}

	_, err = coll.Indexes().CreateMany(ctx, models)
	return err
}

func (m *MongoDBClient) collection(collectionName string) (*mongo.Collection, error) {
	if m.db == nil {
		return nil, fmt.Errorf("MongoDBClient is not connected to a database")
	}
	if collectionName == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", collectionName)
	}
	return m.db.Collection(collectionName), nil
}

// sanitizeDocument copies a map document into bson.M, dropping _id. Keys that are
// not configured fields or could carry an operator ($ or .) are rejected.
func (m *MongoDBClient) sanitizeDocument(document interfaces.Document) (bson.M, error) {
	sanitized := bson.M{}
	if document == nil {
		return sanitized, nil
	}

	var docMap map[string]interface{}
	switch d := document.(type) {
	case map[string]interface{}:
		docMap = d
	case bson.M:
		docMap = d
	default:
		return nil, fmt.Errorf("MongoDBClient: document must be map[string]interface{}, got %T", document)
	}

	for key, value := range docMap {
		if key == IDFIELD {
			continue
		}
		if !m.validFields[key] || strings.ContainsAny(key, "$.") {
			return nil, fmt.Errorf("MongoDBClient: invalid or unsafe field name: %s", key)
		}
		sanitized[key] = value
	}

	return sanitized, nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", dsn)
	}
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}
