package repository

import (
	"context"
	"errors"
	"time"

	"bsk-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoBlobRepo struct {
	collection *mongo.Collection
}

func NewMongoBlobRepo(db *mongo.Database) *MongoBlobRepo {
	return &MongoBlobRepo{
		collection: db.Collection("client_storage"),
	}
}

func (r *MongoBlobRepo) Get(ctx context.Context, scope, key string) ([]byte, error) {
	var entry models.StorageEntry
	err := r.collection.FindOne(ctx, bson.M{"scope": scope, "key": key}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Put upserts the value so each (scope, key) pair has exactly one document.
func (r *MongoBlobRepo) Put(ctx context.Context, scope, key string, value []byte) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"scope": scope, "key": key},
		bson.M{
			"$set": bson.M{
				"value":      string(value),
				"updated_at": time.Now(),
			},
			"$setOnInsert": bson.M{
				"scope": scope,
				"key":   key,
			},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// EnsureIndexes creates necessary indexes for the client_storage collection
func (r *MongoBlobRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "scope", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
