package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Collections used by the notebook.
const (
	NotebookCollection = "Notebook"
	TagsCollection     = "Tags"
)

var ErrDocumentNotFound = errors.New("document not found")

// RecordStore is the remote document store contract: equality-filtered
// queries plus create/update/delete by id. Documents carry their id in "_id".
type RecordStore interface {
	Query(ctx context.Context, collection string, filter bson.M, limit int) ([]bson.M, error)
	Create(ctx context.Context, collection string, fields bson.M) (string, error)
	Update(ctx context.Context, collection, id string, fields bson.M) error
	Delete(ctx context.Context, collection, id string) error
}

// toDocument flattens v into a bson.M through its bson tags.
func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	delete(doc, "_id")
	return doc, nil
}

func fromDocument(doc bson.M, v interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if err := bson.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
