package accountrepo

import (
	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haguru/kakashi/internal/interfaces"
)

// NewMongoAccountRepository creates an account repository over a MongoDB client.
func NewMongoAccountRepository(dbClient interfaces.DBClient) (*AccountRepository, error) {
	return newAccountRepository(dbClient, mongosdk.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
}
