package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StorageEntry is one key/value pair of a client's local storage as kept in Mongo.
type StorageEntry struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Scope     string        `bson:"scope" json:"scope"`
	Key       string        `bson:"key" json:"key"`
	Value     string        `bson:"value" json:"value"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}
