package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawshop/storefront/internal/core/ports"
)

const defaultCollection = "client_state"

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = defaultCollection
	}
	return &Store{coll: db.Collection(collection)}
}

type stateDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stateDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrStateNotFound
		}
		return nil, fmt.Errorf("mongo state load %s: %w", key, err)
	}
	return doc.Value, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo state save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo state delete %s: %w", key, err)
	}
	return nil
}
