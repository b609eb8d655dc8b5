package repository

import (
	"context"
	"fmt"

	"kitnotes/middleware"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the RecordStore backed by a MongoDB database; each
// collection name maps to a Mongo collection of the same name.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) Query(ctx context.Context, collection string, filter bson.M, limit int) ([]bson.M, error) {
	timer := middleware.TrackStoreOperation("query", collection)
	defer timer.ObserveDuration()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := s.DB.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, fields bson.M) (string, error) {
	timer := middleware.TrackStoreOperation("create", collection)
	defer timer.ObserveDuration()

	id := uuid.New().String()
	doc := bson.M{"_id": id}
	for k, v := range fields {
		if k != "_id" {
			doc[k] = v
		}
	}

	if _, err := s.DB.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	timer := middleware.TrackStoreOperation("update", collection)
	defer timer.ObserveDuration()

	set := bson.M{}
	for k, v := range fields {
		if k != "_id" {
			set[k] = v
		}
	}

	result, err := s.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrDocumentNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	timer := middleware.TrackStoreOperation("delete", collection)
	defer timer.ObserveDuration()

	result, err := s.DB.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, ErrDocumentNotFound)
	}
	return nil
}
