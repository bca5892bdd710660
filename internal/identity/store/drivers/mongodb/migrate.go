package mongodb

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ApplyMigrations creates the unique indexes that back the uniqueness rules.
// CreateMany is a no-op for indexes that already exist with the same keys and options.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	_, err := s.db.Collection(accountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexAccountsEmail),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexAccountsUsername),
		},
	})
	if err != nil {
		return oops.Code("MONGO_MIGRATE_FAILED").With("collection", accountsCollection).Wrap(mapUnavailable(err))
	}

	_, err = s.db.Collection(profilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(indexProfilesUserID),
	})
	if err != nil {
		return oops.Code("MONGO_MIGRATE_FAILED").With("collection", profilesCollection).Wrap(mapUnavailable(err))
	}
	return nil
}
