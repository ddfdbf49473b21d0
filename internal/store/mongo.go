package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoMaxAttempts bounds the optimistic retry loop in MongoStore.Update.
const mongoMaxAttempts = 8

type mongoDoc struct {
	Name    string `bson:"_id"`
	Body    string `bson:"body"`
	Version int64  `bson:"version"`
}

// MongoStore keeps every collection as one document of a Mongo collection.
// Writers use optimistic concurrency on the version field: a replace only
// succeeds when the version read is still current, otherwise it retries.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore stores documents in db.collections.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, col: db.Collection("collections")}
}

func (s *MongoStore) find(ctx context.Context, collection string) (mongoDoc, bool, error) {
	var doc mongoDoc
	err := s.col.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return mongoDoc{}, false, nil
	}
	if err != nil {
		return mongoDoc{}, false, fmt.Errorf("load %s: %w", collection, err)
	}
	return doc, true, nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, collection string) ([]byte, error) {
	doc, ok, err := s.find(ctx, collection)
	if err != nil || !ok || doc.Body == "" {
		return nil, err
	}
	return []byte(doc.Body), nil
}

// Update implements Store.
func (s *MongoStore) Update(ctx context.Context, collection string, fn UpdateFunc) error {
	for attempt := 0; attempt < mongoMaxAttempts; attempt++ {
		doc, exists, err := s.find(ctx, collection)
		if err != nil {
			return err
		}
		var cur []byte
		if doc.Body != "" {
			cur = []byte(doc.Body)
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}

		if !exists {
			_, err := s.col.InsertOne(ctx, mongoDoc{Name: collection, Body: string(next), Version: 1})
			if mongo.IsDuplicateKeyError(err) {
				continue // another writer created it first
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", collection, err)
			}
			return nil
		}

		res, err := s.col.UpdateOne(ctx,
			bson.M{"_id": collection, "version": doc.Version},
			bson.M{"$set": bson.M{"body": string(next), "version": doc.Version + 1}},
		)
		if err != nil {
			return fmt.Errorf("write %s: %w", collection, err)
		}
		if res.MatchedCount == 1 {
			return nil
		}
	}
	return ErrConflict
}

// Ping implements Store.
func (s *MongoStore) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

// Close implements Store.
func (s *MongoStore) Close() error { return s.client.Disconnect(context.Background()) }
