package watchlistrepo

import (
	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haguru/kakashi/internal/interfaces"
)

// NewMongoWatchlistRepository creates a watchlist repository over a MongoDB client.
func NewMongoWatchlistRepository(dbClient interfaces.DBClient) (*WatchlistRepository, error) {
	return newWatchlistRepository(dbClient, []mongosdk.IndexModel{
		{
			Keys:    bson.D{{Key: fieldOwner, Value: 1}, {Key: fieldMovieRef, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_owner_movie"),
		},
		{
			Keys:    bson.D{{Key: fieldOwner, Value: 1}, {Key: fieldAddedAt, Value: 1}},
			Options: options.Index().SetName("idx_owner_added"),
		},
	})
}
