package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notebookIndexes := []mongo.IndexModel{
		// list query: author filter, star then recency ordering
		{
			Keys: bson.D{
				{Key: "author", Value: 1},
				{Key: "star", Value: -1},
				{Key: "lastEdit", Value: -1},
			},
			Options: options.Index().
				SetName("author_star_last_edit"),
		},
		{
			Keys: bson.D{
				{Key: "author", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().
				SetName("author_tags"),
		},
	}

	tagsIndexes := []mongo.IndexModel{
		// one vocabulary per user
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
	}

	if _, err := db.Collection(NotebookCollection).Indexes().CreateMany(ctx, notebookIndexes); err != nil {
		return fmt.Errorf("failed to create notebook indexes: %w", err)
	}

	if _, err := db.Collection(TagsCollection).Indexes().CreateMany(ctx, tagsIndexes); err != nil {
		return fmt.Errorf("failed to create tags indexes: %w", err)
	}

	return nil
}
